// Package baseline stores accepted findings in a TOML file so that only new
// violations fail a lint run.
package baseline

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/zerr"
)

// Finding identifies an accepted violation. Positions are left out so that
// unrelated edits to a file do not invalidate its entries.
type Finding struct {
	// File is slash-separated and relative to the baseline file's directory.
	File      string `toml:"file"`
	Source    string `toml:"source"`
	MessageID string `toml:"messageId"`
	Specifier string `toml:"specifier"`
}

// Baseline is a set of accepted findings.
type Baseline struct {
	Findings []Finding `toml:"finding"`

	root   string
	lookup map[Finding]struct{}
}

// Load reads the baseline at path. A missing file yields an empty baseline.
func Load(path string) (*Baseline, error) {
	b := &Baseline{root: filepath.Dir(path)}

	// #nosec G304 -- path is passed explicitly by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.buildLookup()
			return b, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBaselineReadFailed.Error()), "path", path)
	}

	if err := toml.Unmarshal(data, b); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBaselineParseFailed.Error()), "path", path)
	}
	b.buildLookup()

	return b, nil
}

func (b *Baseline) buildLookup() {
	b.lookup = make(map[Finding]struct{}, len(b.Findings))
	for _, f := range b.Findings {
		b.lookup[f] = struct{}{}
	}
}

// Len returns the number of accepted findings.
func (b *Baseline) Len() int {
	if b == nil {
		return 0
	}
	return len(b.lookup)
}

// Contains reports whether v is an accepted finding.
func (b *Baseline) Contains(v domain.Violation) bool {
	if b == nil {
		return false
	}
	_, ok := b.lookup[findingFor(b.root, v)]
	return ok
}

// Filter returns results without the accepted violations and the number of
// violations that were suppressed. The input is not modified.
func (b *Baseline) Filter(results []domain.FileResult) ([]domain.FileResult, int) {
	if b.Len() == 0 {
		return results, 0
	}

	suppressed := 0
	out := make([]domain.FileResult, 0, len(results))
	for _, res := range results {
		kept := make([]domain.Violation, 0, len(res.Violations))
		for _, v := range res.Violations {
			if b.Contains(v) {
				suppressed++
				continue
			}
			kept = append(kept, v)
		}
		res.Violations = kept
		out = append(out, res)
	}

	return out, suppressed
}

// Write stores every violation of results as an accepted finding at path and
// returns the number of findings written.
func Write(path string, results []domain.FileResult) (int, error) {
	root := filepath.Dir(path)

	seen := make(map[Finding]struct{})
	var findings []Finding
	for _, res := range results {
		for _, v := range res.Violations {
			f := findingFor(root, v)
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			findings = append(findings, f)
		}
	}

	slices.SortFunc(findings, func(a, c Finding) int {
		return cmp.Or(
			cmp.Compare(a.File, c.File),
			cmp.Compare(a.Source, c.Source),
			cmp.Compare(a.MessageID, c.MessageID),
			cmp.Compare(a.Specifier, c.Specifier),
		)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s baseline of accepted %s findings\n", domain.PluginName, domain.RuleName)
	fmt.Fprintf(&buf, "# Total: %d findings\n\n", len(findings))

	if err := toml.NewEncoder(&buf).Encode(Baseline{Findings: findings}); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrBaselineWriteFailed.Error()), "path", path)
	}

	if err := os.WriteFile(path, buf.Bytes(), domain.FilePerm); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrBaselineWriteFailed.Error()), "path", path)
	}

	return len(findings), nil
}

func findingFor(root string, v domain.Violation) Finding {
	file := v.Path
	if rel, err := filepath.Rel(root, v.Path); err == nil {
		file = rel
	}

	return Finding{
		File:      filepath.ToSlash(file),
		Source:    v.Source,
		MessageID: string(v.MessageID),
		Specifier: v.Specifier,
	}
}
