package usagerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "promptlane.ai/prompt-gateway/app/domain/usage"
	"promptlane.ai/prompt-gateway/app/infrastructure/database/dbschema"
)

type UsageGormRepository struct {
	db *gorm.DB
}

var _ domain.UsageRepository = (*UsageGormRepository)(nil)

func NewUsageGormRepository(db *gorm.DB) domain.UsageRepository {
	return &UsageGormRepository{
		db: db,
	}
}

// IncrementUsage is the one write of the accounting path:
// INSERT ... ON CONFLICT (organization_id, period) DO UPDATE SET
// count = count + 1. The database serializes concurrent increments; no
// read-modify-write happens client-side.
func (repo *UsageGormRepository) IncrementUsage(ctx context.Context, orgID uint, period string) error {
	record := dbschema.UsageRecord{
		OrganizationID: orgID,
		Period:         period,
		Count:          1,
	}
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "organization_id"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("usage_record.count + ?", 1),
		}),
	}).Create(&record).Error
}

// FindCount returns the current count for (organization, period), zero when
// the row does not exist yet.
func (repo *UsageGormRepository) FindCount(ctx context.Context, orgID uint, period string) (int64, error) {
	var model dbschema.UsageRecord
	err := repo.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Where("period = ?", period).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return model.Count, nil
}

// SumByPeriod totals every organization's count for one period.
func (repo *UsageGormRepository) SumByPeriod(ctx context.Context, period string) (int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.UsageRecord{}).
		Where("period = ?", period).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}
