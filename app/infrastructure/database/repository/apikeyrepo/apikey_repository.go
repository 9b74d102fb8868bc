package apikeyrepo

import (
	"context"

	"gorm.io/gorm"

	domain "promptlane.ai/prompt-gateway/app/domain/apikey"
	"promptlane.ai/prompt-gateway/app/domain/query"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/dbschema"
	"promptlane.ai/prompt-gateway/app/utils/functional"
)

type ApiKeyGormRepository struct {
	db *gorm.DB
}

var _ domain.ApiKeyRepository = (*ApiKeyGormRepository)(nil)

func NewApiKeyGormRepository(db *gorm.DB) domain.ApiKeyRepository {
	return &ApiKeyGormRepository{
		db: db,
	}
}

func (repo *ApiKeyGormRepository) applyFilter(sql *gorm.DB, filter domain.ApiKeyFilter) *gorm.DB {
	if filter.PublicID != nil {
		sql = sql.Where("public_id = ?", *filter.PublicID)
	}
	if filter.OrganizationID != nil {
		sql = sql.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Enabled != nil {
		sql = sql.Where("enabled = ?", *filter.Enabled)
	}
	return sql
}

// Create persists a new API key.
func (repo *ApiKeyGormRepository) Create(ctx context.Context, k *domain.ApiKey) error {
	model := dbschema.NewSchemaApiKey(k)
	if err := repo.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	k.ID = model.ID
	return nil
}

// Update replaces an existing API key row.
func (repo *ApiKeyGormRepository) Update(ctx context.Context, k *domain.ApiKey) error {
	return repo.db.WithContext(ctx).Save(dbschema.NewSchemaApiKey(k)).Error
}

// DeleteByID removes an API key by its ID.
func (repo *ApiKeyGormRepository) DeleteByID(ctx context.Context, id uint) error {
	return repo.db.WithContext(ctx).Delete(&dbschema.ApiKey{}, id).Error
}

// FindByID retrieves an API key by its primary key ID.
func (repo *ApiKeyGormRepository) FindByID(ctx context.Context, id uint) (*domain.ApiKey, error) {
	var model dbschema.ApiKey
	if err := repo.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

// FindByKeyHash is the auth path's point lookup.
func (repo *ApiKeyGormRepository) FindByKeyHash(ctx context.Context, keyHash string) (*domain.ApiKey, error) {
	var model dbschema.ApiKey
	if err := repo.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&model).Error; err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (repo *ApiKeyGormRepository) FindByFilter(ctx context.Context, filter domain.ApiKeyFilter, p *query.Pagination) ([]*domain.ApiKey, error) {
	sql := repo.applyFilter(repo.db.WithContext(ctx).Model(&dbschema.ApiKey{}), filter)
	if p != nil {
		if p.Limit != nil && *p.Limit > 0 {
			sql = sql.Limit(*p.Limit)
		}
		if p.After != nil {
			if p.Order == "desc" {
				sql = sql.Where("id < ?", *p.After)
			} else {
				sql = sql.Where("id > ?", *p.After)
			}
		}
		if p.Order == "desc" {
			sql = sql.Order("id DESC")
		} else {
			sql = sql.Order("id ASC")
		}
	}
	var rows []*dbschema.ApiKey
	if err := sql.Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(item *dbschema.ApiKey) *domain.ApiKey {
		return item.EtoD()
	}), nil
}

func (repo *ApiKeyGormRepository) Count(ctx context.Context, filter domain.ApiKeyFilter) (int64, error) {
	var count int64
	sql := repo.applyFilter(repo.db.WithContext(ctx).Model(&dbschema.ApiKey{}), filter)
	err := sql.Count(&count).Error
	return count, err
}
