package app

import (
	"context"
	"time"

	"github.com/lessongate/lessongate/internal/repository"
	"go.uber.org/zap"
)

// How long decided requests and read notifications are kept around.
const retentionWindow = 90 * 24 * time.Hour

// Janitor runs periodic cleanup of rows nothing reads anymore.
type Janitor struct {
	requests      *repository.AccessRequestRepository
	notifications *repository.NotificationRepository
	logger        *zap.Logger
	stopChan      chan struct{}
}

func NewJanitor(
	requests *repository.AccessRequestRepository,
	notifications *repository.NotificationRepository,
	logger *zap.Logger,
) *Janitor {
	return &Janitor{
		requests:      requests,
		notifications: notifications,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the background cleanup task.
func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("Starting background janitor")

	go j.runCleanupTask(ctx)
}

// Stop stops the background task.
func (j *Janitor) Stop() {
	j.logger.Info("Stopping background janitor")
	close(j.stopChan)
}

func (j *Janitor) runCleanupTask(ctx context.Context) {
	// First run right at startup.
	j.cleanup(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cleanup(ctx)
		case <-j.stopChan:
			j.logger.Info("Cleanup task stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Cleanup task cancelled")
			return
		}
	}
}

func (j *Janitor) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-retentionWindow)

	removed, err := j.requests.DeleteDecidedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to prune decided requests", zap.Error(err))
	} else if removed > 0 {
		j.logger.Info("Pruned decided access requests", zap.Int64("count", removed))
	}

	removed, err = j.notifications.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to prune read notifications", zap.Error(err))
	} else if removed > 0 {
		j.logger.Info("Pruned read notifications", zap.Int64("count", removed))
	}
}
