package commands

import (
	"context"

	"climasite/internal/core/domain/model/kernel"
)

// PruneWebhookEventsCommandHandler trims the processed event log.
type PruneWebhookEventsCommandHandler struct {
	uowFactory EventLogUoWFactory
	clock      kernel.Clock
}

// NewPruneWebhookEventsCommandHandler creates a handler for event log pruning.
func NewPruneWebhookEventsCommandHandler(uowFactory EventLogUoWFactory, clock kernel.Clock) PruneWebhookEventsCommandHandler {
	return PruneWebhookEventsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle deletes expired event ids and returns how many were removed.
func (h *PruneWebhookEventsCommandHandler) Handle(ctx context.Context, cmd PruneWebhookEventsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.PaymentEventRepository().DeleteOlderThan(ctx, h.clock.Now().Add(-cmd.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
