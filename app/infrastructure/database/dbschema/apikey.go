package dbschema

import (
	"time"

	"promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ApiKey{})
}

type ApiKey struct {
	BaseModel
	PublicID       string              `gorm:"size:64;not null;uniqueIndex"`
	KeyHash        string              `gorm:"size:64;not null;uniqueIndex"`
	OrganizationID uint                `gorm:"not null;index"`
	Organization   Organization        `gorm:"foreignKey:OrganizationID"`
	Description    string              `gorm:"size:255"`
	Permissions    map[string][]string `gorm:"serializer:json"`
	Enabled        bool                `gorm:"default:true;index"`
	ExpiresAt      *time.Time
}

func NewSchemaApiKey(a *apikey.ApiKey) *ApiKey {
	return &ApiKey{
		BaseModel: BaseModel{
			ID: a.ID,
		},
		PublicID:       a.PublicID,
		KeyHash:        a.KeyHash,
		OrganizationID: a.OrganizationID,
		Description:    a.Description,
		Permissions:    a.Permissions,
		Enabled:        a.Enabled,
		ExpiresAt:      a.ExpiresAt,
	}
}

func (a *ApiKey) EtoD() *apikey.ApiKey {
	return &apikey.ApiKey{
		ID:             a.ID,
		PublicID:       a.PublicID,
		KeyHash:        a.KeyHash,
		OrganizationID: a.OrganizationID,
		Description:    a.Description,
		Permissions:    a.Permissions,
		Enabled:        a.Enabled,
		ExpiresAt:      a.ExpiresAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
