// export_test.go exposes the classification cache for white-box assertions.
package interop

// Cached returns the cached ESM-ness of path.
func (s *Session) Cached(path string) (isESM, ok bool) {
	return s.cache.get(path)
}

// CacheLen returns the number of cached classifications.
func (s *Session) CacheLen() int {
	return s.cache.len()
}

// StoreClassification writes a cache entry directly.
func (s *Session) StoreClassification(path string, isESM bool) bool {
	return s.cache.store(path, isESM)
}
