package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds job schedules and their parameters.
type Config struct {
	ExpirePendingSchedule string
	PendingOrderTTL       time.Duration

	PruneEventsSchedule   string
	WebhookEventRetention time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expirePendingJob *ExpirePendingOrdersJob
	pruneEventsJob   *PruneWebhookEventsJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	cfg Config,
	expireHandler ExpirePendingOrdersHandler,
	pruneHandler PruneWebhookEventsHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expirePendingJob: NewExpirePendingOrdersJob(expireHandler, cfg.ExpirePendingSchedule, cfg.PendingOrderTTL, logger),
		pruneEventsJob:   NewPruneWebhookEventsJob(pruneHandler, cfg.PruneEventsSchedule, cfg.WebhookEventRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expirePendingJob.Start(); err != nil {
		return fmt.Errorf("failed to start expire pending orders job: %w", err)
	}

	if err := jm.pruneEventsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.expirePendingJob.Stop()
		return fmt.Errorf("failed to start prune webhook events job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pruneEventsJob.Stop()
	jm.expirePendingJob.Stop()
}
