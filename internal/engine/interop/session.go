// Package interop classifies files as ESM or CJS from their nearest package
// manifest and reports imports that break CJS interop in ESM files.
package interop

import (
	"path/filepath"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
)

// Session holds the state of one lint run. Classifications are memoized for the
// lifetime of the session and never invalidated; start a new session to observe
// manifest edits.
type Session struct {
	fsys   ports.FileSystem
	logger ports.Logger

	cwd             string
	typedExtensions []string
	exempt          map[string]struct{}

	cache *classificationCache
}

// Option configures a Session.
type Option func(*Session)

// WithWorkingDir sets the directory advisory paths are made relative to.
func WithWorkingDir(dir string) Option {
	return func(s *Session) {
		s.cwd = dir
	}
}

// WithTypedExtensions overrides the extensions of import targets that are analyzed.
func WithTypedExtensions(exts ...string) Option {
	return func(s *Session) {
		if len(exts) > 0 {
			s.typedExtensions = exts
		}
	}
}

// WithExempt adds specifiers that are skipped like Node.js built-ins.
func WithExempt(specifiers ...string) Option {
	return func(s *Session) {
		for _, spec := range specifiers {
			s.exempt[spec] = struct{}{}
		}
	}
}

// NewSession creates a session with an empty classification cache.
func NewSession(fsys ports.FileSystem, logger ports.Logger, opts ...Option) *Session {
	s := &Session{
		fsys:            fsys,
		logger:          logger,
		typedExtensions: domain.DefaultTypedExtensions(),
		exempt:          make(map[string]struct{}),
		cache:           newClassificationCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// displayPath returns path relative to the working directory when possible.
func (s *Session) displayPath(path string) string {
	if s.cwd == "" {
		return path
	}
	rel, err := filepath.Rel(s.cwd, path)
	if err != nil {
		return path
	}
	return rel
}
