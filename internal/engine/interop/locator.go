package interop

import (
	"path/filepath"

	"go.trai.ch/cjsguard/internal/core/domain"
)

// Locate returns the nearest directory at or above path that contains a package
// manifest. The search starts at path itself when it is a directory, otherwise at
// its parent. It reports false when the file system root is reached.
func (s *Session) Locate(path string) (string, bool) {
	dir := filepath.Clean(path)
	if info, err := s.fsys.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if s.isFile(filepath.Join(dir, domain.ManifestFileName)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (s *Session) exists(path string) bool {
	_, err := s.fsys.Stat(path)
	return err == nil
}

func (s *Session) isFile(path string) bool {
	info, err := s.fsys.Stat(path)
	return err == nil && !info.IsDir()
}
