package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache is the process-local cache tier. Entries live until their TTL
// passes or the process exits; nothing is persisted and other processes never
// see them. Values are replaced wholesale, never mutated in place.
type MemoryCache struct {
	items *ttlcache.Cache[string, string]
}

// NewMemoryCache creates the process-lifetime local tier.
func NewMemoryCache() *MemoryCache {
	items := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go items.Start()
	return &MemoryCache{items: items}
}

// Get returns the value for key, treating expired entries as absent.
func (c *MemoryCache) Get(key string) (string, bool) {
	item := c.items.Get(key)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// Set stores value under key for ttl; ttl <= 0 means no expiry.
func (c *MemoryCache) Set(key string, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.items.Set(key, value, ttl)
}

// Delete removes key if present.
func (c *MemoryCache) Delete(key string) {
	c.items.Delete(key)
}

// Flush drops every entry; equivalent to a process restart.
func (c *MemoryCache) Flush() {
	c.items.DeleteAll()
}

// Stop halts the background expiry loop.
func (c *MemoryCache) Stop() {
	c.items.Stop()
}
