package usage

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"

	"promptlane.ai/prompt-gateway/app/domain/organization"
	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
)

type UsageService struct {
	repo                UsageRepository
	organizationService *organization.OrganizationService
	cache               *cache.TieredCache
	recorder            *Recorder
	now                 func() time.Time
}

func NewService(
	repo UsageRepository,
	organizationService *organization.OrganizationService,
	tieredCache *cache.TieredCache,
) *UsageService {
	s := &UsageService{
		repo:                repo,
		organizationService: organizationService,
		cache:               tieredCache,
		now:                 time.Now,
	}
	s.recorder = NewRecorder(s)
	return s
}

// Recorder exposes the background increment queue for startup wiring.
func (s *UsageService) Recorder() *Recorder {
	return s.recorder
}

// CheckLimit reports whether the organization is under its monthly quota.
// Plan limit and current count resolve concurrently, both from local-tier
// snapshots; the check is read-only and never blocks on a durable write.
func (s *UsageService) CheckLimit(ctx context.Context, orgID uint) (*UsageStatus, error) {
	now := s.now()
	period := CurrentPeriod(now)

	var (
		planLimit *PlanLimitResult
		used      int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		limit, err := s.organizationService.ResolvePlanLimit(gctx, orgID)
		if err != nil {
			return err
		}
		planLimit = &PlanLimitResult{Plan: limit.Plan, Limit: limit.Limit}
		return nil
	})
	g.Go(func() error {
		count, err := s.resolveCount(gctx, orgID, period)
		if err != nil {
			return err
		}
		used = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	status := &UsageStatus{
		Plan:    planLimit.Plan,
		Limit:   planLimit.Limit,
		Used:    used,
		ResetAt: PeriodResetAt(now),
	}
	if planLimit.Limit == nil {
		status.Allowed = true
		return status, nil
	}
	status.Allowed = used < *planLimit.Limit
	remaining := *planLimit.Limit - used
	if remaining < 0 {
		remaining = 0
	}
	status.Remaining = &remaining
	return status, nil
}

// PlanLimitResult decouples the service's return shape from the cached plan
// entity.
type PlanLimitResult struct {
	Plan  organization.Plan
	Limit *int64
}

// RecordUsage enqueues one successful call for durable accounting. It never
// blocks the caller and never reports failure; accounting is best-effort
// relative to the read path.
func (s *UsageService) RecordUsage(orgID uint) {
	s.recorder.Enqueue(orgID)
}

// resolveCount reads the monthly counter through the cache. The snapshot is
// local-tier only: counters churn on every request, and replicating them to
// the shared tier would burn its write budget for no durability benefit.
func (s *UsageService) resolveCount(ctx context.Context, orgID uint, period string) (int64, error) {
	key := cache.KeyUsage(orgID, period)
	if raw, ok := s.cache.Read(ctx, key); ok {
		var cached CachedUsage
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached.Count, nil
		}
	}
	count, err := s.repo.FindCount(ctx, orgID, period)
	if err != nil {
		return 0, err
	}
	s.writeSnapshot(ctx, key, count)
	return count, nil
}

// bumpSnapshot optimistically advances the local counter after a durable
// increment so back-to-back requests in this process see the new count
// before the next re-read. Absent snapshots are left absent.
func (s *UsageService) bumpSnapshot(ctx context.Context, orgID uint, period string) {
	key := cache.KeyUsage(orgID, period)
	raw, ok := s.cache.ReadLocal(key)
	if !ok {
		return
	}
	var cached CachedUsage
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return
	}
	s.writeSnapshot(ctx, key, cached.Count+1)
}

func (s *UsageService) writeSnapshot(ctx context.Context, key string, count int64) {
	raw, err := json.Marshal(CachedUsage{Count: count})
	if err != nil {
		return
	}
	s.cache.Write(ctx, key, string(raw), cache.LocalFor(cache.UsageTTL))
}
