package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Reporter = (*JSON)(nil)

// JSON renders results as a single JSON document.
type JSON struct {
	w   io.Writer
	cwd string
}

// NewJSON creates a JSON reporter writing to w.
func NewJSON(w io.Writer, cwd string) *JSON {
	return &JSON{w: w, cwd: cwd}
}

type jsonDocument struct {
	Plugin     string             `json:"plugin"`
	Rule       string             `json:"rule"`
	Files      int                `json:"files"`
	Violations []domain.Violation `json:"violations"`
}

// Report writes every violation in file and position order.
func (r *JSON) Report(results []domain.FileResult) error {
	doc := jsonDocument{
		Plugin:     domain.PluginName,
		Rule:       domain.RuleName,
		Files:      len(results),
		Violations: []domain.Violation{},
	}
	for _, rep := range prepare(results, r.cwd) {
		doc.Violations = append(doc.Violations, rep.violations...)
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, domain.ErrReportFailed.Error())
	}
	return nil
}
