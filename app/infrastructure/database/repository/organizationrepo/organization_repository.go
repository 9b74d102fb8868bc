package organizationrepo

import (
	"context"

	"gorm.io/gorm"

	domain "promptlane.ai/prompt-gateway/app/domain/organization"
	"promptlane.ai/prompt-gateway/app/domain/query"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/dbschema"
	"promptlane.ai/prompt-gateway/app/utils/functional"
)

type OrganizationGormRepository struct {
	db *gorm.DB
}

var _ domain.OrganizationRepository = (*OrganizationGormRepository)(nil)

func NewOrganizationGormRepository(db *gorm.DB) domain.OrganizationRepository {
	return &OrganizationGormRepository{
		db: db,
	}
}

func (repo *OrganizationGormRepository) applyFilter(sql *gorm.DB, filter domain.OrganizationFilter) *gorm.DB {
	if filter.PublicID != nil {
		sql = sql.Where("public_id = ?", *filter.PublicID)
	}
	if filter.Enabled != nil {
		sql = sql.Where("enabled = ?", *filter.Enabled)
	}
	return sql
}

// Create persists a new organization to the database.
func (repo *OrganizationGormRepository) Create(ctx context.Context, o *domain.Organization) error {
	model := dbschema.NewSchemaOrganization(o)
	if err := repo.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	o.ID = model.ID
	return nil
}

// Update modifies an existing organization.
func (repo *OrganizationGormRepository) Update(ctx context.Context, o *domain.Organization) error {
	return repo.db.WithContext(ctx).Save(dbschema.NewSchemaOrganization(o)).Error
}

// FindByID retrieves an organization by its primary key ID.
func (repo *OrganizationGormRepository) FindByID(ctx context.Context, id uint) (*domain.Organization, error) {
	var model dbschema.Organization
	if err := repo.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

func (repo *OrganizationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Organization, error) {
	var model dbschema.Organization
	if err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&model).Error; err != nil {
		return nil, err
	}
	return model.EtoD(), nil
}

// FindByFilter retrieves a list of organizations based on a filter and pagination.
func (repo *OrganizationGormRepository) FindByFilter(ctx context.Context, filter domain.OrganizationFilter, p *query.Pagination) ([]*domain.Organization, error) {
	sql := repo.applyFilter(repo.db.WithContext(ctx).Model(&dbschema.Organization{}), filter)
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
			// Default to ascending order
			sql = sql.Order("id ASC")
		}
	}
	var rows []*dbschema.Organization
	if err := sql.Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(org *dbschema.Organization) *domain.Organization {
		return org.EtoD()
	}), nil
}

// Count returns the total number of organizations matching a given filter.
func (repo *OrganizationGormRepository) Count(ctx context.Context, filter domain.OrganizationFilter) (int64, error) {
	var count int64
	sql := repo.applyFilter(repo.db.WithContext(ctx).Model(&dbschema.Organization{}), filter)
	err := sql.Count(&count).Error
	return count, err
}
