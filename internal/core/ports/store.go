package ports

import "go.trai.ch/cjsguard/internal/core/domain"

// ResultStore keeps per-file lint results between runs of a watch session.
type ResultStore interface {
	// Get returns the stored result for path, if any.
	Get(path string) (domain.FileResult, bool)
	// Put stores the result for its path.
	Put(result domain.FileResult)
	// Invalidate drops the results of the given paths.
	Invalidate(paths []string)
	// Reset drops every stored result.
	Reset()
}
