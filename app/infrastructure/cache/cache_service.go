package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheService.Get when a key is absent.
var ErrCacheMiss = errors.New("cache: key not found")

// Mutex is a distributed lock handle acquired through the shared tier.
type Mutex interface {
	LockContext(ctx context.Context) error
	UnlockContext(ctx context.Context) (bool, error)
}

// CacheService defines the shared-tier cache operations. Values are opaque
// JSON strings; an expiration of zero means the entry never expires.
type CacheService interface {
	// Set stores a string value in cache with an expiration time
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a string value from cache; ErrCacheMiss when absent
	Get(ctx context.Context, key string) (string, error)

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error

	// NewMutex returns a distributed lock held for at most expiry
	NewMutex(name string, expiry time.Duration) Mutex
}
