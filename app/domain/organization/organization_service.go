package organization

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
)

// PlanLimit is the cached plan entity for one organization. Limit is nil for
// unlimited plans.
type PlanLimit struct {
	Plan  Plan   `json:"plan"`
	Limit *int64 `json:"limit"`
}

type OrganizationService struct {
	repo  OrganizationRepository
	cache *cache.TieredCache
}

func NewService(repo OrganizationRepository, tieredCache *cache.TieredCache) *OrganizationService {
	return &OrganizationService{
		repo:  repo,
		cache: tieredCache,
	}
}

func (s *OrganizationService) FindByPublicID(ctx context.Context, publicID string) (*Organization, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

func (s *OrganizationService) Create(ctx context.Context, o *Organization) (*Organization, error) {
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ErrOrganizationNotFound is returned when no organization exists for an ID.
var ErrOrganizationNotFound = errors.New("organization not found")

// ResolvePlanLimit resolves the plan limit for an organization through the
// cache. Plans change rarely, so the snapshot lives in the local tier only
// with a long TTL; a short staleness window after a plan change is accepted.
func (s *OrganizationService) ResolvePlanLimit(ctx context.Context, orgID uint) (*PlanLimit, error) {
	key := cache.KeyPlan(orgID)
	if raw, ok := s.cache.Read(ctx, key); ok {
		var cached PlanLimit
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &cached, nil
		}
	}
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	limit := &PlanLimit{
		Plan:  org.Plan,
		Limit: org.Plan.MonthlyLimit(),
	}
	if raw, err := json.Marshal(limit); err == nil {
		s.cache.Write(ctx, key, string(raw), cache.LocalFor(cache.PlanTTL))
	}
	return limit, nil
}
