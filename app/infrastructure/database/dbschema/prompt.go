package dbschema

import (
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/domain/prompt"
	"promptlane.ai/prompt-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Prompt{})
	database.RegisterSchemaForAutoMigrate(PromptVersion{})
}

type Prompt struct {
	BaseModel
	PublicID       string         `gorm:"size:64;not null;uniqueIndex"`
	OrganizationID uint           `gorm:"not null;index"`
	Organization   Organization   `gorm:"foreignKey:OrganizationID"`
	Name           string         `gorm:"size:128;not null"`
	Description    string         `gorm:"size:1024"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// PromptVersion rows are append-only once published; content never changes.
type PromptVersion struct {
	BaseModel
	PromptID      uint           `gorm:"not null;uniqueIndex:idx_prompt_version"`
	Prompt        Prompt         `gorm:"foreignKey:PromptID"`
	Version       string         `gorm:"size:32;not null;uniqueIndex:idx_prompt_version"`
	SystemMessage string         `gorm:"type:text"`
	UserMessage   string         `gorm:"type:text"`
	Config        map[string]any `gorm:"serializer:json"`
	Published     bool           `gorm:"default:false;index"`
}

func NewSchemaPrompt(p *prompt.Prompt) *Prompt {
	return &Prompt{
		BaseModel: BaseModel{
			ID: p.ID,
		},
		PublicID:       p.PublicID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Description:    p.Description,
	}
}

func (p *Prompt) EtoD() *prompt.Prompt {
	return &prompt.Prompt{
		ID:             p.ID,
		PublicID:       p.PublicID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func NewSchemaPromptVersion(v *prompt.PromptVersion) *PromptVersion {
	return &PromptVersion{
		BaseModel: BaseModel{
			ID: v.ID,
		},
		PromptID:      v.PromptID,
		Version:       v.Version,
		SystemMessage: v.SystemMessage,
		UserMessage:   v.UserMessage,
		Config:        v.Config,
		Published:     v.Published,
	}
}

func (v *PromptVersion) EtoD() *prompt.PromptVersion {
	return &prompt.PromptVersion{
		ID:            v.ID,
		PromptID:      v.PromptID,
		Version:       v.Version,
		SystemMessage: v.SystemMessage,
		UserMessage:   v.UserMessage,
		Config:        v.Config,
		Published:     v.Published,
		CreatedAt:     v.CreatedAt,
	}
}
