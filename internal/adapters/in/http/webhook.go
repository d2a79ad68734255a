package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"climasite/internal/core/domain/services"
	"climasite/internal/pkg/errs"
)

// gatewayEnvelope is the subset of the payment gateway's event body the
// service reads. The payload object is a payment intent for payment_intent.*
// events and a charge for charge.* events.
type gatewayEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object gatewayObject `json:"object"`
	} `json:"data"`
}

type gatewayObject struct {
	ID               string `json:"id"`
	Object           string `json:"object"`
	PaymentIntent    string `json:"payment_intent"`
	AmountRefunded   *int64 `json:"amount_refunded"`
	LastPaymentError *struct {
		Message string `json:"message"`
	} `json:"last_payment_error"`
}

// parsePaymentEvent normalizes a raw gateway body into a PaymentEvent.
func parsePaymentEvent(body []byte) (services.PaymentEvent, error) {
	var envelope gatewayEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return services.PaymentEvent{}, errs.NewValueIsInvalidErrorWithCause("body", fmt.Errorf("malformed event: %w", err))
	}

	obj := envelope.Data.Object
	event := services.PaymentEvent{
		ID:   strings.TrimSpace(envelope.ID),
		Type: strings.TrimSpace(envelope.Type),
	}

	switch {
	case obj.PaymentIntent != "":
		event.PaymentIntentID = obj.PaymentIntent
	case obj.Object == "payment_intent" || strings.HasPrefix(event.Type, "payment_intent."):
		event.PaymentIntentID = obj.ID
	}
	event.PaymentIntentID = strings.TrimSpace(event.PaymentIntentID)

	if obj.LastPaymentError != nil {
		event.FailureMessage = strings.TrimSpace(obj.LastPaymentError.Message)
	}
	if event.Type == services.EventChargeRefunded {
		event.AmountRefunded = obj.AmountRefunded
	}

	return event, nil
}
