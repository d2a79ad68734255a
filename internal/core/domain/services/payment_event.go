package services

import (
	"strings"

	"climasite/internal/pkg/errs"
)

// Payment gateway event types understood by the reconciler.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventChargeRefunded   = "charge.refunded"
)

// PaymentEvent is the normalized form of a payment gateway webhook.
type PaymentEvent struct {
	// ID is the gateway event id. It may be empty; it is only used for deduplication.
	ID string

	Type            string
	PaymentIntentID string

	// FailureMessage is set for payment_intent.payment_failed.
	FailureMessage string

	// AmountRefunded is set for charge.refunded, in minor units.
	AmountRefunded *int64
}

// Validate checks the fields every event must carry.
func (e PaymentEvent) Validate() error {
	if strings.TrimSpace(e.Type) == "" {
		return errs.NewValueIsRequiredError("type")
	}
	if strings.TrimSpace(e.PaymentIntentID) == "" {
		return errs.NewValueIsRequiredError("paymentIntentId")
	}
	return nil
}

// IsKnown reports whether the reconciler acts on this event type.
func (e PaymentEvent) IsKnown() bool {
	switch e.Type {
	case EventPaymentSucceeded, EventPaymentFailed, EventChargeRefunded:
		return true
	default:
		return false
	}
}
