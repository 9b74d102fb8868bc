package dbschema

import (
	"promptlane.ai/prompt-gateway/app/domain/organization"
	"promptlane.ai/prompt-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Organization{})
}

type Organization struct {
	BaseModel
	PublicID string `gorm:"size:64;not null;uniqueIndex"`
	Name     string `gorm:"size:128;not null;uniqueIndex"`
	Plan     string `gorm:"type:varchar(20);not null;default:'free'"`
	Enabled  bool   `gorm:"default:true;index"`
}

func NewSchemaOrganization(o *organization.Organization) *Organization {
	return &Organization{
		BaseModel: BaseModel{
			ID: o.ID,
		},
		PublicID: o.PublicID,
		Name:     o.Name,
		Plan:     string(o.Plan),
		Enabled:  o.Enabled,
	}
}

func (o *Organization) EtoD() *organization.Organization {
	return &organization.Organization{
		ID:        o.ID,
		PublicID:  o.PublicID,
		Name:      o.Name,
		Plan:      organization.Plan(o.Plan),
		Enabled:   o.Enabled,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
