package usage

import (
	"context"
	"time"

	"promptlane.ai/prompt-gateway/app/domain/organization"
)

// Period identifies one calendar month of usage accounting, "YYYY-MM" in UTC.
func CurrentPeriod(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// PeriodResetAt is the start of the next calendar month in UTC. It is
// computed, never stored.
func PeriodResetAt(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// UsageStatus is the quota snapshot handed to the request handler. Limit and
// Remaining are nil on unlimited plans.
type UsageStatus struct {
	Allowed   bool
	Plan      organization.Plan
	Limit     *int64
	Used      int64
	Remaining *int64
	ResetAt   time.Time
}

// CachedUsage is the local-tier snapshot of one monthly counter. The
// canonical count lives only in the durable store.
type CachedUsage struct {
	Count int64 `json:"count"`
}

type UsageRepository interface {
	// IncrementUsage atomically creates the (organization, period) row with
	// count 1 or increments the existing row. Safe under arbitrary
	// concurrent callers; the store's upsert provides the ordering.
	IncrementUsage(ctx context.Context, orgID uint, period string) error
	// FindCount returns the current count, zero when no row exists yet.
	FindCount(ctx context.Context, orgID uint, period string) (int64, error)
	// SumByPeriod totals all organizations' counts for one period.
	SumByPeriod(ctx context.Context, period string) (int64, error)
}
