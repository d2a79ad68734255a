package commands

import (
	"context"
	"log/slog"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/services"
	"climasite/internal/core/ports"
)

// HandlePaymentWebhookCommandHandler reconciles payment gateway events with orders.
//
// The gateway delivers events at least once and in any order. The handler
// acknowledges every event it can reason about, including unknown payment
// intents and transitions that are no longer applicable, and only fails on
// infrastructure errors so that the gateway retries those.
type HandlePaymentWebhookCommandHandler struct {
	uowFactory WebhookUoWFactory
	reconciler services.PaymentReconciler
	metrics    ports.WebhookMetrics
	clock      kernel.Clock
	logger     *slog.Logger
}

// NewHandlePaymentWebhookCommandHandler creates a webhook handler.
func NewHandlePaymentWebhookCommandHandler(
	uowFactory WebhookUoWFactory,
	metrics ports.WebhookMetrics,
	clock kernel.Clock,
	logger *slog.Logger,
) HandlePaymentWebhookCommandHandler {
	return HandlePaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewPaymentReconciler(),
		metrics:    metrics,
		clock:      clock,
		logger:     logger.With("component", "payment-webhook"),
	}
}

// Handle processes the event and reports what happened to it.
func (h *HandlePaymentWebhookCommandHandler) Handle(
	ctx context.Context,
	cmd HandlePaymentWebhookCommand,
) (services.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	event := cmd.Event()
	outcome, err := h.process(ctx, event)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to process payment event",
			"event_id", event.ID, "type", event.Type, "payment_intent", event.PaymentIntentID, "error", err)
		return "", err
	}

	h.metrics.ObserveWebhook(event.Type, string(outcome))
	return outcome, nil
}

func (h *HandlePaymentWebhookCommandHandler) process(ctx context.Context, event services.PaymentEvent) (services.Outcome, error) {
	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if event.ID != "" {
		fresh, err := uow.PaymentEventRepository().Record(ctx, event.ID, event.Type, event.PaymentIntentID, now)
		if err != nil {
			return "", err
		}
		if !fresh {
			h.logger.InfoContext(ctx, "duplicate payment event", "event_id", event.ID, "type", event.Type)
			return services.OutcomeDuplicate, nil
		}
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByPaymentIntentID(ctx, event.PaymentIntentID)
	if err != nil {
		return "", err
	}
	if o == nil {
		h.logger.WarnContext(ctx, "no order for payment intent",
			"event_id", event.ID, "type", event.Type, "payment_intent", event.PaymentIntentID)
		return services.OutcomeOrderNotFound, uow.Commit(ctx)
	}

	from := o.Status()
	outcome, err := h.reconciler.Reconcile(o, event, now)
	if err != nil {
		return "", err
	}

	switch outcome { //nolint:exhaustive // remaining outcomes are produced above
	case services.OutcomeApplied:
		if err = orderRepo.Update(ctx, o); err != nil {
			return "", err
		}
		h.logger.InfoContext(ctx, "payment event applied",
			"order_id", o.ID().String(), "type", event.Type, "from", from.String(), "to", o.Status().String())
	case services.OutcomeRejected:
		h.logger.InfoContext(ctx, "payment event not applicable",
			"order_id", o.ID().String(), "type", event.Type, "status", from.String())
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return outcome, nil
}
