package mod

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FactorySim_Go/internal/factory"
)

// cachedBundle wraps a decoded bundle with version metadata for cache invalidation
type cachedBundle struct {
	Version  string
	Bundle   factory.Bundle
	CachedAt time.Time
}

// bundleCache keeps decoded bundles keyed by content digest with
// time-based expiration and version-based invalidation
type bundleCache struct {
	lru *expirable.LRU[string, *cachedBundle]
}

func newBundleCache(size int, ttl time.Duration) *bundleCache {
	return &bundleCache{
		lru: expirable.NewLRU[string, *cachedBundle](size, nil, ttl),
	}
}

// Get returns a copy of the cached bundle. Entries with a stale version are dropped.
func (c *bundleCache) Get(digest string) (factory.Bundle, bool) {
	entry, found := c.lru.Get(digest)
	if !found {
		return factory.Bundle{}, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(digest)
		return factory.Bundle{}, false
	}

	return cloneBundle(entry.Bundle), true
}

// Set stores a copy of b under digest
func (c *bundleCache) Set(digest string, b factory.Bundle) {
	c.lru.Add(digest, &cachedBundle{
		Version:  CacheSchemaVersion,
		Bundle:   cloneBundle(b),
		CachedAt: time.Now(),
	})
}

// Len reports the number of live entries
func (c *bundleCache) Len() int {
	return c.lru.Len()
}

// Clear removes all entries
func (c *bundleCache) Clear() {
	c.lru.Purge()
}
