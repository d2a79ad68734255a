package jobs

import (
	"context"
	"log/slog"
	"time"

	"climasite/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PruneWebhookEventsHandler deletes old processed event ids.
type PruneWebhookEventsHandler interface {
	Handle(ctx context.Context, cmd commands.PruneWebhookEventsCommand) (int64, error)
}

// PruneWebhookEventsJob keeps the processed event log from growing without bound.
// Events older than the retention can no longer be deduplicated, so the
// retention must exceed the gateway's retry window.
type PruneWebhookEventsJob struct {
	handler   PruneWebhookEventsHandler
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPruneWebhookEventsJob creates the pruning job.
func NewPruneWebhookEventsJob(
	handler PruneWebhookEventsHandler,
	schedule string,
	retention time.Duration,
	logger *slog.Logger,
) *PruneWebhookEventsJob {
	return &PruneWebhookEventsJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "prune_webhook_events_job"),
	}
}

// Start schedules the job.
func (j *PruneWebhookEventsJob) Start() error {
	cmd, err := commands.NewPruneWebhookEventsCommand(j.retention)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Prune webhook events job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Run prunes once and returns the number of removed events.
func (j *PruneWebhookEventsJob) Run(ctx context.Context, cmd commands.PruneWebhookEventsCommand) int64 {
	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Prune webhook events job failed", "error", err)
		return 0
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Pruned webhook events", "removed", removed)
	}
	return removed
}

// Stop stops the job and waits for a running tick to finish.
func (j *PruneWebhookEventsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Prune webhook events job stopped")
}
