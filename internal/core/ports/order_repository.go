package ports

import (
	"context"
	"errors"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
)

// ErrConflict is returned when a write collides with an existing record,
// e.g. a second order with the same payment intent.
var ErrConflict = errors.New("conflicting record already exists")

// OrderRepository defines the persistence contract for order aggregates.
// Lookups that find nothing return (nil, nil); callers decide whether a missing
// order is an error.
//
// Inside a unit of work, loads lock the order row until the transaction ends, so
// concurrent writers to the same order are serialized.
type OrderRepository interface {
	// Add persists a new order with its items and notes.
	// Returns ErrConflict if the id, order number or payment intent is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, timestamps, tracking data, payment intent and any
	// notes appended since the order was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentIntentID retrieves the order correlated with a gateway payment intent.
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*order.Order, error)

	// GetStalePending retrieves up to limit orders in Pending or PaymentFailed that
	// were created before createdBefore, oldest first. Rows already locked by another
	// transaction are skipped.
	//
	// Example:
	//   stale, err := repo.GetStalePending(ctx, now.Add(-24*time.Hour), 100)
	//   if err != nil {
	//       return fmt.Errorf("failed to load stale orders: %w", err)
	//   }
	GetStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*order.Order, error)
}
