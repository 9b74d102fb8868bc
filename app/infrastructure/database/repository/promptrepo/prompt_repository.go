package promptrepo

import (
	"context"

	"gorm.io/gorm"

	domain "promptlane.ai/prompt-gateway/app/domain/prompt"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/dbschema"
)

type PromptGormRepository struct {
	db *gorm.DB
}

var _ domain.PromptRepository = (*PromptGormRepository)(nil)

func NewPromptGormRepository(db *gorm.DB) domain.PromptRepository {
	return &PromptGormRepository{
		db: db,
	}
}

// Create persists a new prompt.
func (repo *PromptGormRepository) Create(ctx context.Context, p *domain.Prompt) error {
	model := dbschema.NewSchemaPrompt(p)
	if err := repo.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	p.ID = model.ID
	return nil
}

// CreateVersion persists a new prompt version.
func (repo *PromptGormRepository) CreateVersion(ctx context.Context, v *domain.PromptVersion) error {
	model := dbschema.NewSchemaPromptVersion(v)
	if err := repo.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	v.ID = model.ID
	return nil
}

// FindByPublicID retrieves a prompt by its public ID. Soft-deleted prompts
// are excluded by gorm's DeletedAt handling.
func (repo *PromptGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Prompt, error) {
	var model dbschema.Prompt
	if err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&model).Error; err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

// FindVersion retrieves one published version, joining through the prompt's
// public ID so the lookup does not depend on the metadata fetch.
func (repo *PromptGormRepository) FindVersion(ctx context.Context, promptPublicID, version string) (*domain.PromptVersion, error) {
	var model dbschema.PromptVersion
	err := repo.db.WithContext(ctx).
		Joins("JOIN prompt ON prompt.id = prompt_version.prompt_id AND prompt.deleted_at IS NULL").
		Where("prompt.public_id = ?", promptPublicID).
		Where("prompt_version.version = ?", version).
		Where("prompt_version.published = ?", true).
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

// FindLatestVersion retrieves the most recently published version.
func (repo *PromptGormRepository) FindLatestVersion(ctx context.Context, promptPublicID string) (*domain.PromptVersion, error) {
	var model dbschema.PromptVersion
	err := repo.db.WithContext(ctx).
		Joins("JOIN prompt ON prompt.id = prompt_version.prompt_id AND prompt.deleted_at IS NULL").
		Where("prompt.public_id = ?", promptPublicID).
		Where("prompt_version.published = ?", true).
		Order("prompt_version.id DESC").
		First(&model).Error
	if err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}
