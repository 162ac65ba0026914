// Package atomiccowcache provides a read-mostly cache whose lookups take no
// locks once a key has been populated.
package atomiccowcache

import (
	"sync"

	"go.uber.org/atomic"
)

type snapshot[K comparable, V any] struct {
	entries map[K]V
}

// Cache lazily builds values with a generator and publishes a new read-only
// snapshot every time a key is added.  Values are never evicted, so it suits
// small, bounded key spaces such as metric attribute sets.
type Cache[K comparable, V any] struct {
	build func(K) V

	published atomic.Pointer[snapshot[K, V]]

	writeLock sync.Mutex
	entries   map[K]V
}

func NewCache[K comparable, V any](build func(K) V) *Cache[K, V] {
	c := &Cache[K, V]{
		build:   build,
		entries: make(map[K]V),
	}
	c.publishLocked()
	return c
}

func (c *Cache[K, V]) publishLocked() {
	entries := make(map[K]V, len(c.entries))
	for k, v := range c.entries {
		entries[k] = v
	}
	c.published.Store(&snapshot[K, V]{entries: entries})
}

func (c *Cache[K, V]) Get(k K) V {
	if v, ok := c.published.Load().entries[k]; ok {
		return v
	}

	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	if v, ok := c.entries[k]; ok {
		return v
	}

	v := c.build(k)
	c.entries[k] = v
	c.publishLocked()
	return v
}

// Len returns the number of keys visible to lock-free readers.
func (c *Cache[K, V]) Len() int {
	return len(c.published.Load().entries)
}
