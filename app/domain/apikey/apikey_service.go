package apikey

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
	"promptlane.ai/prompt-gateway/app/utils/idgen"
	"promptlane.ai/prompt-gateway/config/environment_variables"
)

// InvalidReason says why a presented API key was rejected.
type InvalidReason string

const (
	ReasonUnknownKey InvalidReason = "unknown_key"
	ReasonDisabled   InvalidReason = "disabled"
	ReasonExpired    InvalidReason = "expired"
)

// CachedApiKey mirrors the durable row; it is replaced wholesale on re-read,
// never patched in place.
type CachedApiKey struct {
	OrganizationID uint                `json:"organization_id"`
	Permissions    map[string][]string `json:"permissions"`
	Enabled        bool                `json:"enabled"`
	ExpiresAt      *time.Time          `json:"expires_at"`
}

// Can reports whether the cached key grants action on resource; the check is
// identical for cached and freshly-read values.
func (k *CachedApiKey) Can(resource, action string) bool {
	return permits(k.Permissions, resource, action)
}

type ApiKeyService struct {
	repo  ApiKeyRepository
	cache *cache.TieredCache
}

func NewService(repo ApiKeyRepository, tieredCache *cache.TieredCache) *ApiKeyService {
	return &ApiKeyService{
		repo:  repo,
		cache: tieredCache,
	}
}

const ApikeyPrefix = "pl"

func (s *ApiKeyService) GenerateKeyAndHash() (string, string, error) {
	rawKey, err := idgen.GenerateSecureID(ApikeyPrefix, 32)
	if err != nil {
		return "", "", err
	}
	return rawKey, s.HashKey(rawKey), nil
}

func (s *ApiKeyService) generatePublicID() (string, error) {
	return idgen.GenerateSecureID("key", 16)
}

func (s *ApiKeyService) HashKey(key string) string {
	h := hmac.New(sha256.New, []byte(environment_variables.EnvironmentVariables.APIKEY_SECRET))
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *ApiKeyService) CreateApiKey(ctx context.Context, apiKey *ApiKey) (*ApiKey, error) {
	publicID, err := s.generatePublicID()
	if err != nil {
		return nil, err
	}
	apiKey.PublicID = publicID
	if err := s.repo.Create(ctx, apiKey); err != nil {
		return nil, err
	}
	return apiKey, nil
}

func (s *ApiKeyService) FindByPublicID(ctx context.Context, publicID string) (*ApiKey, error) {
	entities, err := s.repo.FindByFilter(ctx, ApiKeyFilter{
		PublicID: &publicID,
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(entities) != 1 {
		return nil, fmt.Errorf("record not found")
	}
	return entities[0], nil
}

// ResolveApiKey authenticates a raw presented key through the cache. A hit
// skips the datastore entirely; a miss reads the durable row and populates
// both tiers. Not-found is never cached, so a key created later becomes
// visible without waiting out a TTL. A disabled key may keep resolving for up
// to one TTL window; that staleness is accepted.
func (s *ApiKeyService) ResolveApiKey(ctx context.Context, rawKey string) (*CachedApiKey, InvalidReason, error) {
	keyHash := s.HashKey(rawKey)
	cacheKey := cache.KeyApiKey(keyHash)

	if raw, ok := s.cache.Read(ctx, cacheKey); ok {
		var cached CachedApiKey
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return s.validate(&cached)
		}
	}

	entity, err := s.repo.FindByKeyHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ReasonUnknownKey, nil
		}
		return nil, "", err
	}

	cached := &CachedApiKey{
		OrganizationID: entity.OrganizationID,
		Permissions:    entity.Permissions,
		Enabled:        entity.Enabled,
		ExpiresAt:      entity.ExpiresAt,
	}
	if raw, err := json.Marshal(cached); err == nil {
		s.cache.Write(ctx, cacheKey, string(raw), cache.SharedFor(cache.ApiKeyTTL))
	}
	return s.validate(cached)
}

// validate applies the same checks whether the value came from cache or from
// a fresh read.
func (s *ApiKeyService) validate(k *CachedApiKey) (*CachedApiKey, InvalidReason, error) {
	if !k.Enabled {
		return nil, ReasonDisabled, nil
	}
	if k.ExpiresAt != nil && k.ExpiresAt.Before(time.Now()) {
		return nil, ReasonExpired, nil
	}
	return k, "", nil
}

type ApikeyContextKey string

const ApikeyContextKeyResolved ApikeyContextKey = "ApikeyContextKeyResolved"

func GetResolvedKeyFromContext(reqCtx *gin.Context) (*CachedApiKey, bool) {
	resolved, ok := reqCtx.Get(string(ApikeyContextKeyResolved))
	if !ok {
		return nil, false
	}
	v, ok := resolved.(*CachedApiKey)
	if !ok {
		return nil, false
	}
	return v, true
}

func SetResolvedKeyToContext(reqCtx *gin.Context, resolved *CachedApiKey) {
	reqCtx.Set(string(ApikeyContextKeyResolved), resolved)
}
