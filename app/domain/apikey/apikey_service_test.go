package apikey

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/domain/query"
	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
	"promptlane.ai/prompt-gateway/config/environment_variables"
)

func TestMain(m *testing.M) {
	environment_variables.EnvironmentVariables.APIKEY_SECRET = "test-secret"
	m.Run()
}

type fakeApiKeyRepo struct {
	byHash    map[string]*ApiKey
	findCalls int
}

func newFakeApiKeyRepo() *fakeApiKeyRepo {
	return &fakeApiKeyRepo{byHash: map[string]*ApiKey{}}
}

func (r *fakeApiKeyRepo) Create(ctx context.Context, k *ApiKey) error {
	k.ID = uint(len(r.byHash) + 1)
	r.byHash[k.KeyHash] = k
	return nil
}

func (r *fakeApiKeyRepo) Update(ctx context.Context, k *ApiKey) error {
	r.byHash[k.KeyHash] = k
	return nil
}

func (r *fakeApiKeyRepo) DeleteByID(ctx context.Context, id uint) error { return nil }

func (r *fakeApiKeyRepo) FindByID(ctx context.Context, id uint) (*ApiKey, error) {
	for _, k := range r.byHash {
		if k.ID == id {
			return k, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeApiKeyRepo) FindByKeyHash(ctx context.Context, keyHash string) (*ApiKey, error) {
	r.findCalls++
	k, ok := r.byHash[keyHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return k, nil
}

func (r *fakeApiKeyRepo) FindByFilter(ctx context.Context, filter ApiKeyFilter, pagination *query.Pagination) ([]*ApiKey, error) {
	var out []*ApiKey
	for _, k := range r.byHash {
		if filter.PublicID != nil && k.PublicID != *filter.PublicID {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (r *fakeApiKeyRepo) Count(ctx context.Context, filter ApiKeyFilter) (int64, error) {
	return int64(len(r.byHash)), nil
}

func newTestService(t *testing.T, repo ApiKeyRepository) *ApiKeyService {
	t.Helper()
	local := cache.NewMemoryCache()
	t.Cleanup(local.Stop)
	return NewService(repo, cache.NewTieredCache(local, &cache.NoOpCacheService{}))
}

func seedKey(t *testing.T, service *ApiKeyService, repo *fakeApiKeyRepo, mutate func(*ApiKey)) string {
	t.Helper()
	rawKey, keyHash, err := service.GenerateKeyAndHash()
	require.NoError(t, err)
	k := &ApiKey{
		PublicID:       "key_test",
		KeyHash:        keyHash,
		OrganizationID: 42,
		Permissions:    map[string][]string{"prompts": {"read"}},
		Enabled:        true,
	}
	if mutate != nil {
		mutate(k)
	}
	require.NoError(t, repo.Create(context.Background(), k))
	return rawKey
}

func TestGenerateKeyAndHash(t *testing.T) {
	service := newTestService(t, newFakeApiKeyRepo())

	rawKey, keyHash, err := service.GenerateKeyAndHash()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rawKey, ApikeyPrefix+"_"))
	assert.Equal(t, service.HashKey(rawKey), keyHash)
	assert.NotEqual(t, rawKey, keyHash)
}

func TestHashKeyDeterministic(t *testing.T) {
	service := newTestService(t, newFakeApiKeyRepo())

	assert.Equal(t, service.HashKey("pl_abc"), service.HashKey("pl_abc"))
	assert.NotEqual(t, service.HashKey("pl_abc"), service.HashKey("pl_abd"))
}

func TestResolveApiKeyCachesRow(t *testing.T) {
	repo := newFakeApiKeyRepo()
	service := newTestService(t, repo)
	rawKey := seedKey(t, service, repo, nil)
	ctx := context.Background()

	resolved, reason, err := service.ResolveApiKey(ctx, rawKey)
	require.NoError(t, err)
	assert.Empty(t, reason)
	require.NotNil(t, resolved)
	assert.Equal(t, uint(42), resolved.OrganizationID)
	assert.Equal(t, 1, repo.findCalls)

	resolved, _, err = service.ResolveApiKey(ctx, rawKey)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, 1, repo.findCalls, "second resolve should be served from cache")
}

func TestResolveApiKeyUnknownNotCached(t *testing.T) {
	repo := newFakeApiKeyRepo()
	service := newTestService(t, repo)
	ctx := context.Background()

	resolved, reason, err := service.ResolveApiKey(ctx, "pl_nope")
	require.NoError(t, err)
	assert.Nil(t, resolved)
	assert.Equal(t, ReasonUnknownKey, reason)

	_, _, err = service.ResolveApiKey(ctx, "pl_nope")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.findCalls, "unknown keys must not be cached")
}

func TestResolveApiKeyDisabled(t *testing.T) {
	repo := newFakeApiKeyRepo()
	service := newTestService(t, repo)
	rawKey := seedKey(t, service, repo, func(k *ApiKey) { k.Enabled = false })

	resolved, reason, err := service.ResolveApiKey(context.Background(), rawKey)
	require.NoError(t, err)
	assert.Nil(t, resolved)
	assert.Equal(t, ReasonDisabled, reason)
}

func TestResolveApiKeyExpiryAppliesToCachedValue(t *testing.T) {
	repo := newFakeApiKeyRepo()
	service := newTestService(t, repo)
	expiresAt := time.Now().Add(60 * time.Millisecond)
	rawKey := seedKey(t, service, repo, func(k *ApiKey) { k.ExpiresAt = &expiresAt })
	ctx := context.Background()

	resolved, _, err := service.ResolveApiKey(ctx, rawKey)
	require.NoError(t, err)
	require.NotNil(t, resolved)

	time.Sleep(100 * time.Millisecond)

	resolved, reason, err := service.ResolveApiKey(ctx, rawKey)
	require.NoError(t, err)
	assert.Nil(t, resolved)
	assert.Equal(t, ReasonExpired, reason)
	assert.Equal(t, 1, repo.findCalls, "expiry must be enforced on the cached value")
}

func TestRevokedKeyStaysValidUntilTTL(t *testing.T) {
	repo := newFakeApiKeyRepo()
	service := newTestService(t, repo)
	rawKey := seedKey(t, service, repo, nil)
	ctx := context.Background()

	_, _, err := service.ResolveApiKey(ctx, rawKey)
	require.NoError(t, err)

	repo.byHash[service.HashKey(rawKey)].Revoke()

	resolved, _, err := service.ResolveApiKey(ctx, rawKey)
	require.NoError(t, err)
	assert.NotNil(t, resolved, "revocation takes effect only after the cached entry expires")
}

func TestCan(t *testing.T) {
	k := &ApiKey{Permissions: map[string][]string{
		"prompts": {"read"},
		"admin":   {"*"},
	}}
	assert.True(t, k.Can("prompts", "read"))
	assert.False(t, k.Can("prompts", "write"))
	assert.True(t, k.Can("admin", "anything"))
	assert.False(t, k.Can("other", "read"))

	cached := &CachedApiKey{Permissions: k.Permissions}
	assert.True(t, cached.Can("prompts", "read"))
	assert.False(t, cached.Can("prompts", "write"))
}

func TestIsValid(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.True(t, (&ApiKey{Enabled: true}).IsValid())
	assert.True(t, (&ApiKey{Enabled: true, ExpiresAt: &future}).IsValid())
	assert.False(t, (&ApiKey{Enabled: true, ExpiresAt: &past}).IsValid())
	assert.False(t, (&ApiKey{Enabled: false}).IsValid())
}
