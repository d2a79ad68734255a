package jobs

import (
	"context"
	"log/slog"
	"time"

	"climasite/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// maxExpireRounds bounds how many full batches one tick may cancel.
const maxExpireRounds = 10

// ExpirePendingOrdersHandler cancels one batch of unpaid orders.
type ExpirePendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error)
}

// ExpirePendingOrdersJob cancels orders that stayed Pending or PaymentFailed
// longer than the configured time to live.
type ExpirePendingOrdersJob struct {
	handler  ExpirePendingOrdersHandler
	schedule string
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpirePendingOrdersJob creates the expiry job. schedule is a six field
// cron expression with seconds.
func NewExpirePendingOrdersJob(
	handler ExpirePendingOrdersHandler,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *ExpirePendingOrdersJob {
	return &ExpirePendingOrdersJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expire_pending_orders_job"),
	}
}

// Start schedules the job.
func (j *ExpirePendingOrdersJob) Start() error {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.ttl, 0)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), cmd)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expire pending orders job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Run cancels stale orders batch by batch until a batch comes back short.
func (j *ExpirePendingOrdersJob) Run(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) int {
	total := 0
	for range maxExpireRounds {
		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expire pending orders job failed", "error", err)
			break
		}
		total += cancelled
		if cancelled < cmd.BatchSize() {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Expired unpaid orders", "cancelled", total)
	}
	return total
}

// Stop stops the job and waits for a running tick to finish.
func (j *ExpirePendingOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expire pending orders job stopped")
}
