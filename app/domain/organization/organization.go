package organization

import (
	"context"
	"time"

	"promptlane.ai/prompt-gateway/app/domain/query"
)

// Plan is the billing tier of an organization. The monthly call limit is
// derived from it; enterprise has no limit.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

const (
	freeMonthlyLimit int64 = 10_000
	proMonthlyLimit  int64 = 100_000
)

// MonthlyLimit returns the monthly call allowance for the plan, nil meaning
// unlimited. Unknown plans fall back to the free allowance.
func (p Plan) MonthlyLimit() *int64 {
	switch p {
	case PlanEnterprise:
		return nil
	case PlanPro:
		limit := proMonthlyLimit
		return &limit
	default:
		limit := freeMonthlyLimit
		return &limit
	}
}

type Organization struct {
	ID        uint
	PublicID  string
	Name      string
	Plan      Plan
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrganizationFilter struct {
	PublicID *string
	Enabled  *bool
}

type OrganizationRepository interface {
	Create(ctx context.Context, o *Organization) error
	Update(ctx context.Context, o *Organization) error
	FindByID(ctx context.Context, id uint) (*Organization, error)
	FindByPublicID(ctx context.Context, publicID string) (*Organization, error)
	FindByFilter(ctx context.Context, filter OrganizationFilter, pagination *query.Pagination) ([]*Organization, error)
	Count(ctx context.Context, filter OrganizationFilter) (int64, error)
}
