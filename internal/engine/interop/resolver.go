package interop

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/cjsguard/internal/core/domain"
)

// sourceCounterparts maps emitted JavaScript extensions to the TypeScript
// extensions they are compiled from.
var sourceCounterparts = map[string][]string{
	".js":  {".ts", ".tsx"},
	".jsx": {".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
}

// scriptExtensions are tried after the typed extensions for specifiers without
// an extension.
var scriptExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".json"}

// Resolve maps an import specifier written in importer to an existing file.
// A specifier naming a package directory resolves through the directory's
// manifest, preferring the module entry over main.
func (s *Session) Resolve(importer, specifier string) (string, error) {
	path, err := s.resolveSpecifier(importer, specifier)
	if err != nil {
		return "", err
	}
	return s.resolveEntryPoint(path)
}

func (s *Session) resolveSpecifier(importer, specifier string) (string, error) {
	base := filepath.Dir(importer)

	var candidates []string
	switch {
	case strings.HasPrefix(specifier, "file:"):
		u, err := url.Parse(specifier)
		if err != nil {
			return "", fail(domain.ErrUnresolvedImport, err, "specifier", specifier, "importer", importer)
		}
		candidates = append(candidates, filepath.FromSlash(u.Path))
	case isRelative(specifier):
		candidates = append(candidates, filepath.Join(base, filepath.FromSlash(specifier)))
	case filepath.IsAbs(specifier):
		candidates = append(candidates, filepath.Clean(specifier))
	default:
		for dir := base; ; dir = filepath.Dir(dir) {
			candidates = append(candidates,
				filepath.Join(dir, domain.NodeModulesDirName, filepath.FromSlash(specifier)))
			if filepath.Dir(dir) == dir {
				break
			}
		}
	}

	for _, candidate := range candidates {
		if path, ok := s.existingPath(candidate); ok {
			return path, nil
		}
	}

	return "", fail(domain.ErrUnresolvedImport, nil, "specifier", specifier, "importer", importer)
}

// existingPath returns path if it exists, or else the first existing TypeScript
// source it could have been compiled from. A path without an extension also
// matches plain script and JSON files.
func (s *Session) existingPath(path string) (string, bool) {
	if s.exists(path) {
		return path, true
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	alternatives := sourceCounterparts[ext]
	if ext == "" {
		alternatives = slices.Concat(s.typedExtensions, scriptExtensions)
	}
	for _, alt := range alternatives {
		if candidate := stem + alt; s.isFile(candidate) {
			return candidate, true
		}
	}

	return "", false
}

// resolveEntryPoint returns path unchanged unless it is a directory, in which
// case the directory's manifest names the entry point.
func (s *Session) resolveEntryPoint(path string) (string, error) {
	info, err := s.fsys.Stat(path)
	if err != nil || !info.IsDir() {
		return path, nil
	}

	manifestPath := filepath.Join(path, domain.ManifestFileName)
	if !s.isFile(manifestPath) {
		return "", fail(domain.ErrUnresolvedImport, nil, "path", path)
	}

	manifest, err := s.readManifest(manifestPath)
	if err != nil {
		return "", err
	}
	s.cache.store(manifestPath, manifest.IsESM())

	entry := manifest.EntryPoint()
	if entry == "" {
		return "", fail(domain.ErrNoEntryPoint, nil, "manifest", manifestPath)
	}

	entryPath := filepath.FromSlash(entry)
	if !filepath.IsAbs(entryPath) {
		entryPath = filepath.Join(path, entryPath)
	}
	if !s.exists(entryPath) {
		return "", fail(domain.ErrEntryPointMissing, nil, "path", entryPath)
	}

	return entryPath, nil
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
