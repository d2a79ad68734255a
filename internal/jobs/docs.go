// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are six field expressions with a leading seconds field.
//
// # Available Jobs
//
// 1. ExpirePendingOrdersJob - cancels orders that were never paid within PENDING_ORDER_TTL
// 2. PruneWebhookEventsJob - deletes processed payment event ids older than WEBHOOK_EVENT_RETENTION
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cfg, expireHandler, pruneHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and retried on the next tick. Both jobs are safe to
// run on several instances at once: the expiry sweep skips rows locked by
// another sweep, and pruning is a plain range delete.
package jobs
