package healthcheck

import (
	"context"
	"sync/atomic"

	"github.com/mileusna/crontab"
	"gorm.io/gorm"

	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
	"promptlane.ai/prompt-gateway/app/utils/logger"
	"promptlane.ai/prompt-gateway/config/environment_variables"
)

type HealthcheckCrontabService struct {
	db          *gorm.DB
	sharedCache cache.CacheService

	dbHealthy    atomic.Bool
	cacheHealthy atomic.Bool
}

func NewService(db *gorm.DB, sharedCache cache.CacheService) *HealthcheckCrontabService {
	s := &HealthcheckCrontabService{
		db:          db,
		sharedCache: sharedCache,
	}
	s.dbHealthy.Store(true)
	s.cacheHealthy.Store(true)
	return s
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.Check(ctx)
	// Check every 2 minutes
	ctab.AddJob("*/2 * * * *", func() {
		hs.Check(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

func (hs *HealthcheckCrontabService) Check(ctx context.Context) {
	dbOK := true
	if sqlDB, err := hs.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbOK = false
	}
	if dbOK != hs.dbHealthy.Swap(dbOK) {
		logger.GetLogger().WithField("healthy", dbOK).Info("database health changed")
	}

	cacheOK := hs.sharedCache.HealthCheck(ctx) == nil
	if cacheOK != hs.cacheHealthy.Swap(cacheOK) {
		logger.GetLogger().WithField("healthy", cacheOK).Info("shared cache health changed")
	}
}

// Status reports the last observed health of the datastore and shared tier.
func (hs *HealthcheckCrontabService) Status() (dbHealthy, cacheHealthy bool) {
	return hs.dbHealthy.Load(), hs.cacheHealthy.Load()
}
