// Package eventrepo stores the ids of processed payment gateway events so that
// redelivered webhooks are recognized.
package eventrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentEventDTO represents the payment_webhook_events table.
type PaymentEventDTO struct {
	EventID         string `gorm:"primaryKey;size:255"`
	EventType       string `gorm:"size:64"`
	PaymentIntentID string `gorm:"size:255"`
	ReceivedAt      time.Time
}

// TableName specifies the database table name for processed events.
func (PaymentEventDTO) TableName() string {
	return "payment_webhook_events"
}

// GormPaymentEventRepository implements ports.PaymentEventRepository.
type GormPaymentEventRepository struct {
	db *gorm.DB
}

// NewGormPaymentEventRepository creates a new repository bound to db.
func NewGormPaymentEventRepository(db *gorm.DB) *GormPaymentEventRepository {
	return &GormPaymentEventRepository{db: db}
}

// Record inserts the event id unless it is already stored. Inside a transaction a
// concurrent insert of the same id blocks until the other transaction finishes,
// so exactly one of them reports the event as fresh.
func (r *GormPaymentEventRepository) Record(
	ctx context.Context,
	eventID, eventType, paymentIntentID string,
	receivedAt time.Time,
) (bool, error) {
	dto := PaymentEventDTO{
		EventID:         eventID,
		EventType:       eventType,
		PaymentIntentID: paymentIntentID,
		ReceivedAt:      receivedAt.UTC(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// DeleteOlderThan prunes the log. Returns the number of removed rows.
func (r *GormPaymentEventRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("received_at < ?", before).Delete(&PaymentEventDTO{})
	return result.RowsAffected, result.Error
}
