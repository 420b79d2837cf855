package availability

import (
	"sync"

	"stockyard/internal/core/id"
)

// Cache memoizes the last computed Summary per product. Entries are inserted
// or overwritten, never evicted; staleness after a stock change is an accepted
// trade-off bounded by process lifetime. Last-writer-wins is safe because
// summaries recomputed from the same inputs are equal.
type Cache struct {
	mu      sync.RWMutex
	entries map[id.ID]Summary
}

// NewCache creates an empty availability cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[id.ID]Summary),
	}
}

// Get returns the cached summary for a product, if present.
func (c *Cache) Get(productID id.ID) (Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	summary, ok := c.entries[productID]
	return summary, ok
}

// Put stores a summary for a product, replacing any earlier value.
func (c *Cache) Put(productID id.ID, summary Summary) {
	c.mu.Lock()
	c.entries[productID] = summary
	c.mu.Unlock()
}

// Len returns the number of cached products.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
