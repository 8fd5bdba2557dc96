package interop

import "sync"

// classificationCache maps absolute source and manifest paths to their ESM-ness.
// A missing key means "not yet classified". Entries are never removed, and the
// first value written for a key wins.
type classificationCache struct {
	mu      sync.RWMutex
	entries map[string]bool
}

func newClassificationCache() *classificationCache {
	return &classificationCache{entries: make(map[string]bool)}
}

func (c *classificationCache) get(path string) (isESM, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	isESM, ok = c.entries[path]
	return isESM, ok
}

// store records isESM for path unless an entry already exists, and returns the
// value held for path afterwards.
func (c *classificationCache) store(path string, isESM bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[path]; ok {
		return existing
	}
	c.entries[path] = isESM
	return isESM
}

func (c *classificationCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
