package traits

import (
	"strings"
	"sync"

	"xtp/internal/introspect"
)

// Cache memoizes annotation lookups under a case-insensitive key. An entry
// is computed at most once per key and immutable once published, so reads
// after population need no coordination beyond the map access itself.
//
// Caches are created at process start and never torn down; tests substitute
// isolated instances instead of resetting a shared one.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]introspect.Annotation
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]introspect.Annotation)}
}

// GetOrCompute returns the cached annotations for key, computing and storing
// them on first use. Concurrent first-time lookups for the same key observe
// a single winning value; compute runs under the cache lock so it must not
// call back into the cache.
func (c *Cache) GetOrCompute(key string, compute func() []introspect.Annotation) []introspect.Annotation {
	key = strings.ToLower(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.entries[key]; ok {
		return cached
	}
	computed := compute()
	c.entries[key] = computed
	return computed
}

// Len returns the number of populated keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
