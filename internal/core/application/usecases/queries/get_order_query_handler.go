package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/core/ports"
	"climasite/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads order details through a read-through cache.
// Cache failures degrade to database reads; they never fail the query.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db, cache, 5*time.Minute, logger)
//	details, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQueryHandler struct {
	db     *gorm.DB
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB, cache ports.Cache, ttl time.Duration, logger *slog.Logger) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "get-order-query"),
	}
}

// Handle returns the order details or errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := OrderCacheKey(query.OrderID())
	if details, ok := h.fromCache(ctx, key); ok {
		return details, nil
	}

	details, err := h.load(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(details); marshalErr == nil {
		if setErr := h.cache.Set(ctx, key, payload, h.ttl); setErr != nil {
			h.logger.WarnContext(ctx, "cache write failed", "key", key, "error", setErr)
		}
	}

	return details, nil
}

func (h GetOrderQueryHandler) fromCache(ctx context.Context, key string) (*OrderDetails, bool) {
	payload, found, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var details OrderDetails
	if err = json.Unmarshal(payload, &details); err != nil {
		h.logger.WarnContext(ctx, "discarding malformed cache entry", "key", key, "error", err)
		return nil, false
	}

	return &details, true
}

func (h GetOrderQueryHandler) load(ctx context.Context, id kernel.UUID) (*OrderDetails, error) {
	db := h.db.WithContext(ctx)

	var (
		details         OrderDetails
		rawID           uuid.UUID
		paymentIntentID sql.NullString
	)
	err := db.Raw(`
		SELECT
			id,
			order_number,
			status,
			payment_intent_id,
			tracking_number,
			shipping_method,
			currency,
			subtotal,
			shipping,
			tax,
			discount,
			total,
			created_at,
			paid_at,
			shipped_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, id.Bytes()).Row().Scan(
		&rawID,
		&details.OrderNumber,
		&details.Status,
		&paymentIntentID,
		&details.TrackingNumber,
		&details.ShippingMethod,
		&details.Currency,
		&details.Subtotal,
		&details.Shipping,
		&details.Tax,
		&details.Discount,
		&details.Total,
		&details.CreatedAt,
		&details.PaidAt,
		&details.ShippedAt,
		&details.DeliveredAt,
		&details.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}
		return nil, err
	}

	details.ID = rawID.String()
	details.PaymentIntentID = paymentIntentID.String
	details.AllowedNext = allowedNext(details.Status)

	if details.Items, err = h.loadItems(db, id); err != nil {
		return nil, err
	}
	if details.Notes, err = h.loadNotes(db, id); err != nil {
		return nil, err
	}

	return &details, nil
}

func (h GetOrderQueryHandler) loadItems(db *gorm.DB, id kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT
			product_id,
			sku,
			name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item      OrderItemView
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &item.SKU, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		item.ProductID = productID.String()
		item.LineTotal = item.UnitPrice * int64(item.Quantity)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadNotes(db *gorm.DB, id kernel.UUID) (string, error) {
	rows, err := db.Raw(`
		SELECT
			created_at,
			author,
			text
		FROM order_notes
		WHERE order_id = ?
		ORDER BY seq
	`, id.Bytes()).Rows()
	if err != nil {
		return "", err
	}
	defer rows.Close()

	notes := make([]order.Note, 0)
	for rows.Next() {
		var (
			at           time.Time
			author, text string
		)
		if err = rows.Scan(&at, &author, &text); err != nil {
			return "", err
		}
		notes = append(notes, order.NewNote(at, author, text))
	}
	if err = rows.Err(); err != nil {
		return "", err
	}

	return order.FormatNotes(notes), nil
}

func allowedNext(status string) []string {
	names := make([]string, 0)
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return names
	}
	for _, next := range parsed.AllowedNext() {
		names = append(names, next.String())
	}
	return names
}
