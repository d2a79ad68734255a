package commands

import (
	"context"
	"fmt"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
)

// ExpirePendingOrdersCommandHandler cancels Pending and PaymentFailed orders older
// than the configured time to live.
//
// Example:
//
//	handler := NewExpirePendingOrdersCommandHandler(uowFactory, kernel.NewSystemClock())
//	cmd, _ := NewExpirePendingOrdersCommand(24*time.Hour, 0)
//	cancelled, err := handler.Handle(ctx, cmd)
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewExpirePendingOrdersCommandHandler creates a handler for the expiry sweep.
func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle cancels one batch of stale orders in a single transaction and returns
// how many were cancelled.
func (h *ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.GetStalePending(ctx, now.Add(-cmd.TTL()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	reason := "Payment not received within " + formatTTL(cmd.TTL())
	for _, o := range stale {
		if err = o.Transition(order.Cancelled, reason, order.AuthorSystem, now); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}

// formatTTL renders whole hours and minutes compactly ("24h", "90m").
func formatTTL(ttl time.Duration) string {
	switch {
	case ttl%time.Hour == 0:
		return fmt.Sprintf("%dh", ttl/time.Hour)
	case ttl%time.Minute == 0:
		return fmt.Sprintf("%dm", ttl/time.Minute)
	default:
		return ttl.String()
	}
}
