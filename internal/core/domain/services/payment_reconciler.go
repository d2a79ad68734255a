package services

import (
	"errors"
	"strings"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
)

// Outcome describes what happened to a payment event.
type Outcome string

const (
	// OutcomeApplied means the order changed.
	OutcomeApplied Outcome = "applied"

	// OutcomeIgnored means the event type is not handled.
	OutcomeIgnored Outcome = "ignored"

	// OutcomeDuplicate means the event id was already processed.
	OutcomeDuplicate Outcome = "duplicate"

	// OutcomeOrderNotFound means no order carries the event's payment intent.
	OutcomeOrderNotFound Outcome = "order_not_found"

	// OutcomeRejected means the transition was illegal for the order's current
	// status, e.g. a replayed or out-of-order event. The order is unchanged.
	OutcomeRejected Outcome = "rejected"
)

// Reasons recorded in the audit trail for gateway driven transitions.
const (
	ReasonPaymentConfirmed = "Payment confirmed via webhook"
	ReasonPaymentFailed    = "Payment failed"
	ReasonRefundProcessed  = "Refund processed via webhook"
)

// PaymentReconciler applies payment gateway events to orders.
//
// Business rules:
//   - payment_intent.succeeded moves the order to Paid
//   - payment_intent.payment_failed moves the order to PaymentFailed
//   - charge.refunded moves a refundable order to Refunded
//   - Other event types are ignored
//   - Illegal transitions are not errors: the gateway retries and replays
//     events, so they are reported as OutcomeRejected and the order is left as is
//
// Example usage:
//
//	reconciler := services.NewPaymentReconciler()
//	outcome, err := reconciler.Reconcile(o, event, clock.Now())
//	if err != nil {
//	    return err
//	}
//	if outcome == services.OutcomeApplied {
//	    // persist o
//	}
type PaymentReconciler struct{}

// NewPaymentReconciler creates a new PaymentReconciler instance.
func NewPaymentReconciler() PaymentReconciler {
	return PaymentReconciler{}
}

// Reconcile applies event to o.
//
// Returns:
//   - OutcomeApplied when o changed and must be saved
//   - OutcomeIgnored for unknown event types
//   - OutcomeRejected when the event is not applicable to the current status
//   - error only for invalid input; InvalidTransition is never returned
func (r PaymentReconciler) Reconcile(o *order.Order, event PaymentEvent, now time.Time) (Outcome, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	if err := event.Validate(); err != nil {
		return "", err
	}

	var err error
	switch event.Type {
	case EventPaymentSucceeded:
		err = o.Transition(order.Paid, ReasonPaymentConfirmed, order.AuthorPaymentGateway, now)
	case EventPaymentFailed:
		err = o.Transition(order.PaymentFailed, failureReason(event), order.AuthorPaymentGateway, now)
	case EventChargeRefunded:
		err = o.RecordGatewayRefund(refundReason(o, event), order.AuthorPaymentGateway, now)
	default:
		return OutcomeIgnored, nil
	}

	if errors.Is(err, order.ErrInvalidTransition) {
		return OutcomeRejected, nil
	}
	if err != nil {
		return "", err
	}

	return OutcomeApplied, nil
}

func failureReason(event PaymentEvent) string {
	if msg := strings.TrimSpace(event.FailureMessage); msg != "" {
		return msg
	}
	return ReasonPaymentFailed
}

func refundReason(o *order.Order, event PaymentEvent) string {
	if event.AmountRefunded == nil {
		return ReasonRefundProcessed
	}
	amount, err := kernel.NewMoney(*event.AmountRefunded, o.Currency())
	if err != nil {
		return ReasonRefundProcessed
	}
	return "Refund of " + amount.Format() + " processed via webhook"
}
