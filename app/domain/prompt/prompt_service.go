package prompt

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
)

// CachedPrompt holds the TTL-bounded prompt metadata; name and description
// are mutable, so this entity is never cached indefinitely.
type CachedPrompt struct {
	PublicID       string `json:"public_id"`
	OrganizationID uint   `json:"organization_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
}

// CachedVersion holds the content of one published version.
type CachedVersion struct {
	Version       string         `json:"version"`
	SystemMessage string         `json:"system_message"`
	UserMessage   string         `json:"user_message"`
	Config        map[string]any `json:"config"`
}

// PromptResponse is the resolved prompt-plus-version payload.
type PromptResponse struct {
	PromptID      string         `json:"prompt_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Version       string         `json:"version"`
	SystemMessage string         `json:"system_message"`
	UserMessage   string         `json:"user_message"`
	Config        map[string]any `json:"config"`
}

type PromptService struct {
	repo  PromptRepository
	cache *cache.TieredCache
}

func NewService(repo PromptRepository, tieredCache *cache.TieredCache) *PromptService {
	return &PromptService{
		repo:  repo,
		cache: tieredCache,
	}
}

func (s *PromptService) Create(ctx context.Context, p *Prompt) error {
	return s.repo.Create(ctx, p)
}

func (s *PromptService) CreateVersion(ctx context.Context, v *PromptVersion) error {
	return s.repo.CreateVersion(ctx, v)
}

// ResolvePrompt answers a read for one prompt at one version. Metadata and
// version content are independent cache entries resolved concurrently and
// cached on their own schedules; the ownership check runs after cache
// resolution so a cached prompt is reusable across organizations' requests.
func (s *PromptService) ResolvePrompt(ctx context.Context, promptPublicID string, organizationID uint, requestedVersion string) (*PromptResponse, error) {
	latest := requestedVersion == "" || requestedVersion == cache.LatestVersion
	versionLabel := cache.LatestVersion
	if !latest {
		parsed, err := semver.StrictNewVersion(requestedVersion)
		if err != nil {
			return nil, ErrInvalidVersion
		}
		versionLabel = parsed.String()
	}

	var (
		meta    *CachedPrompt
		content *CachedVersion
		metaErr error
		verErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meta, metaErr = s.resolveMetadata(gctx, promptPublicID)
		return nil
	})
	g.Go(func() error {
		content, verErr = s.resolveVersion(gctx, promptPublicID, versionLabel, latest)
		return nil
	})
	_ = g.Wait()

	if metaErr != nil {
		return nil, metaErr
	}
	if meta.OrganizationID != organizationID {
		return nil, ErrNotFound
	}
	if verErr != nil {
		return nil, verErr
	}

	return &PromptResponse{
		PromptID:      meta.PublicID,
		Name:          meta.Name,
		Description:   meta.Description,
		Version:       content.Version,
		SystemMessage: content.SystemMessage,
		UserMessage:   content.UserMessage,
		Config:        content.Config,
	}, nil
}

func (s *PromptService) resolveMetadata(ctx context.Context, promptPublicID string) (*CachedPrompt, error) {
	key := cache.KeyPrompt(promptPublicID)
	if raw, ok := s.cache.Read(ctx, key); ok {
		var cached CachedPrompt
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}
	entity, err := s.repo.FindByPublicID(ctx, promptPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	cached := &CachedPrompt{
		PublicID:       entity.PublicID,
		OrganizationID: entity.OrganizationID,
		Name:           entity.Name,
		Description:    entity.Description,
	}
	if raw, err := json.Marshal(cached); err == nil {
		s.cache.Write(ctx, key, string(raw), cache.SharedFor(cache.PromptTTL))
	}
	return cached, nil
}

// resolveVersion caches a specific published version with no expiry, since
// its content can never change. The latest pointer is a separate key with a
// finite TTL; a not-yet-published version is never cached as missing.
func (s *PromptService) resolveVersion(ctx context.Context, promptPublicID, versionLabel string, latest bool) (*CachedVersion, error) {
	key := cache.KeyVersion(promptPublicID, versionLabel)
	if raw, ok := s.cache.Read(ctx, key); ok {
		var cached CachedVersion
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}

	var entity *PromptVersion
	var err error
	if latest {
		entity, err = s.repo.FindLatestVersion(ctx, promptPublicID)
	} else {
		entity, err = s.repo.FindVersion(ctx, promptPublicID, versionLabel)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}

	cached := &CachedVersion{
		Version:       entity.Version,
		SystemMessage: entity.SystemMessage,
		UserMessage:   entity.UserMessage,
		Config:        entity.Config,
	}
	if raw, err := json.Marshal(cached); err == nil {
		policy := cache.SharedForever()
		if latest {
			policy = cache.SharedFor(cache.LatestVersionTTL)
		}
		s.cache.Write(ctx, key, string(raw), policy)
	}
	return cached, nil
}
