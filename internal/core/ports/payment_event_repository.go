package ports

import (
	"context"
	"time"
)

// PaymentEventRepository remembers processed payment gateway event ids.
type PaymentEventRepository interface {
	// Record stores the event id. It returns false when the id was already
	// recorded, meaning the event is a redelivery.
	Record(ctx context.Context, eventID, eventType, paymentIntentID string, receivedAt time.Time) (bool, error)

	// DeleteOlderThan forgets events received before the cutoff and returns how
	// many were removed.
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
