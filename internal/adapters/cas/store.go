// Package cas keeps lint results addressed by file path and content hash.
package cas

import (
	"slices"
	"sync"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
)

var _ ports.ResultStore = (*Store)(nil)

// Store implements ports.ResultStore in memory. Callers compare the stored
// ContentHash with the current one to decide whether a result is still valid.
type Store struct {
	mu      sync.RWMutex
	results map[string]domain.FileResult
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{results: make(map[string]domain.FileResult)}
}

// Get retrieves the result stored for path.
func (s *Store) Get(path string) (domain.FileResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[path]
	if !ok {
		return domain.FileResult{}, false
	}
	res.Violations = slices.Clone(res.Violations)
	return res, true
}

// Put stores the result under its path, replacing any previous one.
func (s *Store) Put(result domain.FileResult) {
	result.Violations = slices.Clone(result.Violations)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.Path] = result
}

// Invalidate drops the results stored for paths.
func (s *Store) Invalidate(paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range paths {
		delete(s.results, p)
	}
}

// Reset drops every stored result.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.results)
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.results)
}
