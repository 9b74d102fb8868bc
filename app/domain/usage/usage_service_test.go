package usage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/domain/organization"
	"promptlane.ai/prompt-gateway/app/domain/query"
	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
)

type fakeOrgRepo struct {
	orgs map[uint]*organization.Organization
}

func (r *fakeOrgRepo) Create(ctx context.Context, o *organization.Organization) error { return nil }
func (r *fakeOrgRepo) Update(ctx context.Context, o *organization.Organization) error { return nil }

func (r *fakeOrgRepo) FindByID(ctx context.Context, id uint) (*organization.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *fakeOrgRepo) FindByPublicID(ctx context.Context, publicID string) (*organization.Organization, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrgRepo) FindByFilter(ctx context.Context, filter organization.OrganizationFilter, pagination *query.Pagination) ([]*organization.Organization, error) {
	return nil, nil
}

func (r *fakeOrgRepo) Count(ctx context.Context, filter organization.OrganizationFilter) (int64, error) {
	return int64(len(r.orgs)), nil
}

type fakeUsageRepo struct {
	mu         sync.Mutex
	counts     map[string]int64
	findCalls  int
	increments int
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{counts: map[string]int64{}}
}

func usageRowKey(orgID uint, period string) string {
	return fmt.Sprintf("%d:%s", orgID, period)
}

func (r *fakeUsageRepo) IncrementUsage(ctx context.Context, orgID uint, period string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[usageRowKey(orgID, period)]++
	r.increments++
	return nil
}

func (r *fakeUsageRepo) FindCount(ctx context.Context, orgID uint, period string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	return r.counts[usageRowKey(orgID, period)], nil
}

func (r *fakeUsageRepo) SumByPeriod(ctx context.Context, period string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for key, count := range r.counts {
		if key[len(key)-len(period):] == period {
			total += count
		}
	}
	return total, nil
}

func (r *fakeUsageRepo) count(orgID uint, period string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[usageRowKey(orgID, period)]
}

func newTestUsageService(t *testing.T, repo UsageRepository, plan organization.Plan) *UsageService {
	t.Helper()
	local := cache.NewMemoryCache()
	t.Cleanup(local.Stop)
	tiered := cache.NewTieredCache(local, &cache.NoOpCacheService{})
	orgService := organization.NewService(&fakeOrgRepo{
		orgs: map[uint]*organization.Organization{
			1: {ID: 1, PublicID: "org_test", Plan: plan, Enabled: true},
		},
	}, tiered)
	return NewService(repo, orgService, tiered)
}

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2026, time.August, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-08", CurrentPeriod(now))

	// A local time close to the month boundary still buckets in UTC.
	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, "2026-08", CurrentPeriod(time.Date(2026, time.September, 1, 3, 0, 0, 0, loc)))
}

func TestPeriodResetAt(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), PeriodResetAt(now))

	december := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), PeriodResetAt(december))
}

func TestCheckLimitUnderLimit(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }
	repo.counts[usageRowKey(1, "2026-08")] = 9_999

	status, err := service.CheckLimit(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, organization.PlanFree, status.Plan)
	require.NotNil(t, status.Limit)
	assert.Equal(t, int64(10_000), *status.Limit)
	assert.Equal(t, int64(9_999), status.Used)
	require.NotNil(t, status.Remaining)
	assert.Equal(t, int64(1), *status.Remaining)
	assert.Equal(t, PeriodResetAt(now), status.ResetAt)
}

func TestCheckLimitAtLimit(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)
	repo.counts[usageRowKey(1, CurrentPeriod(time.Now()))] = 10_000

	status, err := service.CheckLimit(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, status.Allowed)
	require.NotNil(t, status.Remaining)
	assert.Equal(t, int64(0), *status.Remaining)
}

func TestCheckLimitUnlimitedPlan(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanEnterprise)
	repo.counts[usageRowKey(1, CurrentPeriod(time.Now()))] = 5_000_000

	status, err := service.CheckLimit(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Nil(t, status.Limit)
	assert.Nil(t, status.Remaining)
	assert.Equal(t, int64(5_000_000), status.Used)
}

func TestCheckLimitUnknownOrganization(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)

	_, err := service.CheckLimit(context.Background(), 99)
	assert.ErrorIs(t, err, organization.ErrOrganizationNotFound)
}

func TestCheckLimitUsesCachedSnapshot(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)
	ctx := context.Background()

	_, err := service.CheckLimit(ctx, 1)
	require.NoError(t, err)
	_, err = service.CheckLimit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls, "the second check should read the snapshot")
}

func TestRecorderPersistsIncrements(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Recorder().Start(ctx)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.RecordUsage(1)
		}()
	}
	wg.Wait()

	period := CurrentPeriod(time.Now())
	require.Eventually(t, func() bool {
		return repo.count(1, period) == n
	}, 2*time.Second, 10*time.Millisecond, "every enqueued increment must be persisted exactly once")
}

func TestRecordBumpsLocalSnapshot(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }
	ctx := context.Background()
	period := CurrentPeriod(now)

	status, err := service.CheckLimit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.Used)

	service.recorder.record(ctx, 1)

	status, err = service.CheckLimit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Used, "this process sees its own increment before the snapshot expires")
	assert.Equal(t, 1, repo.findCalls, "the bump must not trigger a re-read")
	assert.Equal(t, int64(1), repo.count(1, period))
}

func TestBumpWithoutSnapshotIsNoop(t *testing.T) {
	repo := newFakeUsageRepo()
	service := newTestUsageService(t, repo, organization.PlanFree)
	ctx := context.Background()

	// No CheckLimit ran, so no snapshot exists; recording must not create one.
	service.recorder.record(ctx, 1)

	status, err := service.CheckLimit(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Used, "the durable count is the source of truth")
}
