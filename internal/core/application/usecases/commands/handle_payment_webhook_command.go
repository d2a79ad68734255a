package commands

import (
	"errors"
	"strings"

	"climasite/internal/core/domain/services"
	"climasite/internal/pkg/guard"
)

var ErrHandlePaymentWebhookCommandIsNotConstructed = errors.New(
	"HandlePaymentWebhookCommand must be created via NewHandlePaymentWebhookCommand constructor",
)

// HandlePaymentWebhookCommand carries one payment gateway notification.
//
// Example:
//
//	cmd, err := NewHandlePaymentWebhookCommand(services.PaymentEvent{
//	    ID:              "evt_1",
//	    Type:            services.EventPaymentSucceeded,
//	    PaymentIntentID: "pi_123",
//	})
type HandlePaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	event services.PaymentEvent

	guard guard.ConstructorGuard
}

// NewHandlePaymentWebhookCommand requires an event type and payment intent id.
func NewHandlePaymentWebhookCommand(event services.PaymentEvent) (HandlePaymentWebhookCommand, error) {
	event.ID = strings.TrimSpace(event.ID)
	event.Type = strings.TrimSpace(event.Type)
	event.PaymentIntentID = strings.TrimSpace(event.PaymentIntentID)

	if err := event.Validate(); err != nil {
		return HandlePaymentWebhookCommand{}, err
	}

	return HandlePaymentWebhookCommand{
		event: event,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c HandlePaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentWebhookCommandIsNotConstructed)
}

// Event returns the normalized gateway event.
func (c HandlePaymentWebhookCommand) Event() services.PaymentEvent {
	return c.event
}
