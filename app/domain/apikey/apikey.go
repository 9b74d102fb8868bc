package apikey

import (
	"context"
	"time"

	"promptlane.ai/prompt-gateway/app/domain/query"
)

type ApiKey struct {
	ID             uint
	PublicID       string
	KeyHash        string
	OrganizationID uint
	Description    string
	Permissions    map[string][]string
	Enabled        bool
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (k *ApiKey) Revoke() {
	k.Enabled = false
	k.UpdatedAt = time.Now()
}

func (k *ApiKey) IsValid() bool {
	if !k.Enabled {
		return false
	}
	if k.ExpiresAt != nil && k.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// Can reports whether the key grants action on resource. A "*" action grants
// every action on that resource.
func (k *ApiKey) Can(resource, action string) bool {
	return permits(k.Permissions, resource, action)
}

func permits(permissions map[string][]string, resource, action string) bool {
	actions, ok := permissions[resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action || a == "*" {
			return true
		}
	}
	return false
}

type ApiKeyFilter struct {
	PublicID       *string
	OrganizationID *uint
	Enabled        *bool
}

type ApiKeyRepository interface {
	Create(ctx context.Context, k *ApiKey) error
	Update(ctx context.Context, k *ApiKey) error
	DeleteByID(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*ApiKey, error)
	FindByKeyHash(ctx context.Context, keyHash string) (*ApiKey, error)
	FindByFilter(ctx context.Context, filter ApiKeyFilter, pagination *query.Pagination) ([]*ApiKey, error)
	Count(ctx context.Context, filter ApiKeyFilter) (int64, error)
}
