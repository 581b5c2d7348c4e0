package doctree

import (
	"sync"

	"github.com/dgallion1/docmap/internal/symbol"
)

// DefaultCacheCapacity bounds the tree cache when no capacity is given.
// It is a tuning parameter, not a correctness contract.
const DefaultCacheCapacity = 1000

// cacheKey memoizes by entity identity, not structural equality: two
// distinct entities with identical content are cached separately.
type cacheKey struct {
	entity symbol.Entity
	origin int
	budget int
}

// Cache memoizes tree construction. Entries are evicted oldest-first
// once capacity is exceeded. Cached nodes are safe to share because
// nodes are immutable after build, but callers must not rely on
// pointer identity between cache-enabled and cache-disabled runs.
type Cache struct {
	mu       sync.Mutex
	entries  map[cacheKey]*Node
	order    []cacheKey
	capacity int
	disabled bool
}

// NewCache creates a cache with the given capacity; zero or negative
// means DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		entries:  make(map[cacheKey]*Node),
		capacity: capacity,
	}
}

// SetEnabled turns memoization on or off. Disabling does not clear
// existing entries, but they are no longer served.
func (c *Cache) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = !enabled
}

// Get returns the cached node for key, if present and caching is
// enabled.
func (c *Cache) Get(key cacheKey) (*Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return nil, false
	}
	n, ok := c.entries[key]
	return n, ok
}

// Put stores a node, evicting the oldest entry past capacity.
func (c *Cache) Put(key cacheKey, n *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return
	}
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = n
	for len(c.entries) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the number of cached trees.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*Node)
	c.order = nil
}
