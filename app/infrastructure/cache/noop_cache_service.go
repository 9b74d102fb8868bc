package cache

import (
	"context"
	"time"
)

// NoOpCacheService provides a no-operation cache service for graceful degradation
type NoOpCacheService struct{}

// Set is a no-op implementation
func (n *NoOpCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}

// Get always reports a miss
func (n *NoOpCacheService) Get(ctx context.Context, key string) (string, error) {
	return "", ErrCacheMiss
}

// Exists always returns false
func (n *NoOpCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// Delete is a no-op implementation
func (n *NoOpCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op implementation
func (n *NoOpCacheService) Close() error {
	return nil
}

// HealthCheck always returns nil (healthy)
func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// NewMutex returns a lock that always acquires
func (n *NoOpCacheService) NewMutex(name string, expiry time.Duration) Mutex {
	return noopMutex{}
}

type noopMutex struct{}

func (noopMutex) LockContext(ctx context.Context) error           { return nil }
func (noopMutex) UnlockContext(ctx context.Context) (bool, error) { return true, nil }
