package interop

import (
	"encoding/json"
	"path/filepath"

	"go.trai.ch/cjsguard/internal/core/domain"
)

// Classify reports whether the package owning path is ESM or CJS.
// ModuleKindUnknown is returned, and not cached, when no ancestor manifest exists.
// An unreadable or malformed manifest is an error.
func (s *Session) Classify(path string) (domain.ModuleKind, error) {
	if isESM, ok := s.cache.get(path); ok {
		return domain.KindFromESM(isESM), nil
	}

	dir, ok := s.Locate(path)
	if !ok {
		return domain.ModuleKindUnknown, nil
	}

	manifestPath := filepath.Join(dir, domain.ManifestFileName)
	if isESM, ok := s.cache.get(manifestPath); ok {
		return domain.KindFromESM(s.cache.store(path, isESM)), nil
	}

	manifest, err := s.readManifest(manifestPath)
	if err != nil {
		return domain.ModuleKindUnknown, err
	}

	isESM := s.cache.store(manifestPath, manifest.IsESM())
	return domain.KindFromESM(s.cache.store(path, isESM)), nil
}

func (s *Session) readManifest(path string) (*domain.Manifest, error) {
	data, err := s.fsys.ReadFile(path)
	if err != nil {
		return nil, fail(domain.ErrManifestRead, err, "path", path)
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fail(domain.ErrManifestParse, err, "path", path)
	}

	return &manifest, nil
}
