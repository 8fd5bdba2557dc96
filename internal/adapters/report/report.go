// Package report renders lint results for humans and machines.
package report

import (
	"cmp"
	"io"
	"path/filepath"
	"slices"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

// New returns the reporter for format. Paths are printed relative to cwd.
func New(format string, w io.Writer, cwd string) (ports.Reporter, error) {
	switch format {
	case "", domain.FormatText:
		return NewText(w, cwd), nil
	case domain.FormatJSON:
		return NewJSON(w, cwd), nil
	default:
		return nil, zerr.With(domain.ErrUnknownFormat, "format", format)
	}
}

// fileReport is a result prepared for rendering.
type fileReport struct {
	path       string
	violations []domain.Violation
}

// prepare sorts results by path and violations by position, drops clean files
// and rewrites paths relative to cwd.
func prepare(results []domain.FileResult, cwd string) []fileReport {
	reports := make([]fileReport, 0, len(results))
	for _, res := range results {
		if len(res.Violations) == 0 {
			continue
		}

		path := relPath(cwd, res.Path)
		violations := slices.Clone(res.Violations)
		for i := range violations {
			violations[i].Path = path
		}
		slices.SortStableFunc(violations, func(a, b domain.Violation) int {
			return cmp.Or(
				cmp.Compare(a.Location.Line, b.Location.Line),
				cmp.Compare(a.Location.Column, b.Location.Column),
			)
		})

		reports = append(reports, fileReport{path: path, violations: violations})
	}

	slices.SortFunc(reports, func(a, b fileReport) int {
		return cmp.Compare(a.path, b.path)
	})
	return reports
}

func relPath(cwd, path string) string {
	if cwd == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
