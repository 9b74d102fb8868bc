package usage

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/sirupsen/logrus"

	"promptlane.ai/prompt-gateway/app/infrastructure/cache"
	"promptlane.ai/prompt-gateway/app/utils/logger"
)

const reporterLockKey = "usage:report:lock"

// Reporter logs fleet-wide usage totals for the current period once per
// hour. A shared-tier mutex keeps the job on a single node.
type Reporter struct {
	repo        UsageRepository
	sharedCache cache.CacheService
}

func NewReporter(repo UsageRepository, sharedCache cache.CacheService) *Reporter {
	return &Reporter{
		repo:        repo,
		sharedCache: sharedCache,
	}
}

func (r *Reporter) Start(ctx context.Context, ctab *crontab.Crontab) {
	ctab.AddJob("0 * * * *", func() {
		r.Report(ctx)
	})
}

func (r *Reporter) Report(ctx context.Context) {
	mutex := r.sharedCache.NewMutex(reporterLockKey, time.Minute)
	if err := mutex.LockContext(ctx); err != nil {
		// Another node holds the lock; it will report.
		return
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			logger.GetLogger().WithField("error", err.Error()).
				Warn("failed to release usage report lock")
		}
	}()

	period := CurrentPeriod(time.Now())
	total, err := r.repo.SumByPeriod(ctx, period)
	if err != nil {
		logger.GetLogger().WithFields(logrus.Fields{
			"period": period,
			"error":  err.Error(),
		}).Error("usage report query failed")
		return
	}
	logger.GetLogger().WithFields(logrus.Fields{
		"period": period,
		"total":  total,
	}).Info("usage report")
}
