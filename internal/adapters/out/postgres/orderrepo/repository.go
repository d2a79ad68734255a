package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"climasite/internal/adapters/out/postgres/pgerr"
	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// Loads take a row lock (SELECT ... FOR UPDATE); inside a transaction this
// serializes writers of the same order.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and notes.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = dto.CreatedAt
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ports.ErrConflict, conflictTarget(err))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable columns of an existing order and inserts notes that
// are not stored yet. Items and monetary columns never change after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":            dto.Status,
		"payment_intent_id": dto.PaymentIntentID,
		"tracking_number":   dto.TrackingNumber,
		"shipping_method":   dto.ShippingMethod,
		"paid_at":           dto.PaidAt,
		"shipped_at":        dto.ShippedAt,
		"delivered_at":      dto.DeliveredAt,
		"cancelled_at":      dto.CancelledAt,
		"updated_at":        time.Now().UTC(),
	})
	if result.Error != nil {
		if pgerr.IsUniqueViolation(result.Error) {
			return fmt.Errorf("%w: %s", ports.ErrConflict, conflictTarget(result.Error))
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(dto.Notes) > 0 {
		// Notes are append-only, so existing (order_id, seq) rows are left as they are.
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Notes).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID. Returns (nil, nil) when it does not exist.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "id = ?", id.Bytes())
}

// GetByPaymentIntentID retrieves the order carrying paymentIntentID.
// Returns (nil, nil) when no order carries it.
func (r *GormOrderRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*order.Order, error) {
	if paymentIntentID == "" {
		return nil, nil
	}

	return r.first(ctx, "payment_intent_id = ?", paymentIntentID)
}

// GetStalePending retrieves unpaid orders created before createdBefore, oldest first.
// Rows locked by a concurrent transaction are skipped.
func (r *GormOrderRepository) GetStalePending(
	ctx context.Context,
	createdBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withChildren(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("status IN ? AND created_at < ?", []string{order.Pending.String(), order.PaymentFailed.String()}, createdBefore).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) first(ctx context.Context, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := r.withChildren(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where(query, args...).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}

func conflictTarget(err error) string {
	if constraint := pgerr.Constraint(err); constraint != "" {
		return constraint
	}
	return "order"
}
