package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"promptlane.ai/prompt-gateway/app/utils/logger"
)

// WritePolicy says whether a facade write reaches the shared tier and with
// what expiry. Exactly one of the three constructors applies:
//
//	LocalFor(d)     local tier only, entry expires after d
//	SharedFor(d)    both tiers, shared entry expires after d
//	SharedForever() both tiers, shared entry never expires
//
// The shared tier has a hard daily write budget, so high-churn entities use
// LocalFor and route their durability through the relational store instead.
type WritePolicy struct {
	shared   bool
	ttl      time.Duration
	localTTL time.Duration
}

func LocalFor(ttl time.Duration) WritePolicy {
	return WritePolicy{localTTL: ttl}
}

func SharedFor(ttl time.Duration) WritePolicy {
	return WritePolicy{shared: true, ttl: ttl, localTTL: PromotionTTL}
}

func SharedForever() WritePolicy {
	return WritePolicy{shared: true, localTTL: PromotionTTL}
}

// TieredCache composes the local and shared tiers behind one read/write
// contract. Cache-layer faults never surface to callers; a failed shared-tier
// call degrades to a miss.
type TieredCache struct {
	local  *MemoryCache
	shared CacheService
}

func NewTieredCache(local *MemoryCache, shared CacheService) *TieredCache {
	return &TieredCache{
		local:  local,
		shared: shared,
	}
}

// Read checks the local tier first; on a local miss it falls through to the
// shared tier and promotes any hit into the local tier with PromotionTTL.
func (t *TieredCache) Read(ctx context.Context, key string) (string, bool) {
	if value, ok := t.local.Get(key); ok {
		t.event("hit", "local", key)
		return value, true
	}
	value, err := t.shared.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.GetLogger().WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("shared cache read failed, treating as miss")
		}
		t.event("miss", "shared", key)
		return "", false
	}
	t.local.Set(key, value, PromotionTTL)
	t.event("hit", "shared", key)
	return value, true
}

// Write populates the local tier and, per policy, the shared tier.
func (t *TieredCache) Write(ctx context.Context, key string, value string, policy WritePolicy) {
	t.local.Set(key, value, policy.localTTL)
	t.event("set", "local", key)
	if !policy.shared {
		return
	}
	if err := t.shared.Set(ctx, key, value, policy.ttl); err != nil {
		logger.GetLogger().WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("shared cache write failed")
		return
	}
	t.event("set", "shared", key)
}

// ReadLocal consults only the local tier. Used where a shared-tier round trip
// must be avoided, e.g. the optimistic usage-snapshot bump.
func (t *TieredCache) ReadLocal(key string) (string, bool) {
	return t.local.Get(key)
}

func (t *TieredCache) event(event, tier, key string) {
	logger.GetLogger().WithFields(logrus.Fields{
		"event": event,
		"tier":  tier,
		"key":   key,
	}).Debug("cache")
}
