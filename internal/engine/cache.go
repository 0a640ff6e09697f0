package engine

import (
	"sync"

	"github.com/nmehta6/paisatrail/internal/model"
)

// resultCache deduplicates extraction work across a batch or stream.
// Keys are message hashes (sender + body + timestamp).
//
// Eviction is deliberately coarse: when the cache exceeds its limit,
// the oldest half of the entries is dropped in bulk. This is an
// accepted approximation of LRU, not the real thing.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]model.ExtractionResult
	keys    []string // insertion order, drives bulk eviction
	maxSize int
}

func newResultCache(maxSize int) *resultCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &resultCache{
		entries: make(map[string]model.ExtractionResult, maxSize),
		maxSize: maxSize,
	}
}

func (c *resultCache) get(key string) (model.ExtractionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.entries[key]
	return res, ok
}

func (c *resultCache) put(key string, res model.ExtractionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = res

	if len(c.entries) > c.maxSize {
		half := len(c.keys) / 2
		for _, old := range c.keys[:half] {
			delete(c.entries, old)
		}
		c.keys = append([]string(nil), c.keys[half:]...)
	}
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
