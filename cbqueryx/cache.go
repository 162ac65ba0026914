package cbqueryx

import (
	"sync"

	"go.uber.org/atomic"
)

// PreparedStatementCache maps statements to the names the query service
// prepared them under.
type PreparedStatementCache struct {
	queryCache map[string]string
	cacheLock  sync.RWMutex

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewPreparedStatementCache() *PreparedStatementCache {
	return &PreparedStatementCache{
		queryCache: make(map[string]string),
	}
}

func (cache *PreparedStatementCache) Get(statement string) (string, bool) {
	cache.cacheLock.RLock()
	entry, ok := cache.queryCache[statement]
	cache.cacheLock.RUnlock()

	if ok {
		cache.hits.Inc()
	} else {
		cache.misses.Inc()
	}

	return entry, ok
}

func (cache *PreparedStatementCache) Put(statement, preparedName string) {
	cache.cacheLock.Lock()
	cache.queryCache[statement] = preparedName
	cache.cacheLock.Unlock()
}

// Evict forgets statement, typically after its prepared plan was rejected.
func (cache *PreparedStatementCache) Evict(statement string) {
	cache.cacheLock.Lock()
	delete(cache.queryCache, statement)
	cache.cacheLock.Unlock()
}

func (cache *PreparedStatementCache) Len() int {
	cache.cacheLock.RLock()
	defer cache.cacheLock.RUnlock()
	return len(cache.queryCache)
}

// Stats returns the lookup hit and miss counts since creation.
func (cache *PreparedStatementCache) Stats() (hits, misses uint64) {
	return cache.hits.Load(), cache.misses.Load()
}
