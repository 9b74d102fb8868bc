package usage

import (
	"context"

	"github.com/sirupsen/logrus"

	"promptlane.ai/prompt-gateway/app/utils/logger"
)

const recorderQueueLen = 1024

// Recorder persists usage increments off the request's critical path. The
// handler enqueues after a response has been fully served; a single worker
// drains the queue, writes through the store's atomic upsert and then bumps
// the local snapshot. Failures are logged and swallowed.
type Recorder struct {
	service *UsageService
	queue   chan uint
	done    chan struct{}
}

func NewRecorder(service *UsageService) *Recorder {
	return &Recorder{
		service: service,
		queue:   make(chan uint, recorderQueueLen),
		done:    make(chan struct{}),
	}
}

// Enqueue hands one increment to the worker without blocking. A full queue
// drops the increment with a log line; quota accounting is best-effort.
func (r *Recorder) Enqueue(orgID uint) {
	select {
	case r.queue <- orgID:
	default:
		logger.GetLogger().WithField("organization_id", orgID).
			Warn("usage recorder queue full, dropping increment")
	}
}

// Start launches the worker; it drains until ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		for {
			select {
			case <-ctx.Done():
				return
			case orgID := <-r.queue:
				r.record(ctx, orgID)
			}
		}
	}()
}

// Wait blocks until the worker has stopped; used by tests and shutdown.
func (r *Recorder) Wait() {
	<-r.done
}

func (r *Recorder) record(ctx context.Context, orgID uint) {
	period := CurrentPeriod(r.service.now())
	if err := r.service.repo.IncrementUsage(ctx, orgID, period); err != nil {
		logger.GetLogger().WithFields(logrus.Fields{
			"organization_id": orgID,
			"period":          period,
			"error":           err.Error(),
		}).Error("usage increment failed")
		return
	}
	r.service.bumpSnapshot(ctx, orgID, period)
}
