package dbschema

import (
	"promptlane.ai/prompt-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(UsageRecord{})
}

// UsageRecord is one organization's call counter for one calendar month.
// Rows are created on first increment and never deleted; the composite
// unique index is what the atomic upsert conflicts on.
type UsageRecord struct {
	BaseModel
	OrganizationID uint   `gorm:"not null;uniqueIndex:idx_org_period"`
	Period         string `gorm:"size:7;not null;uniqueIndex:idx_org_period"`
	Count          int64  `gorm:"not null;default:0"`
}
