package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries directly with SQL.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns one page of orders, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrderPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(query.Statuses()))
	for _, status := range query.Statuses() {
		statuses = append(statuses, status.String())
	}
	// An empty array disables the filter.
	filter := pq.Array(statuses)
	db := h.db.WithContext(ctx)

	page := &OrderPage{
		Orders:   make([]OrderSummary, 0),
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}

	err := db.Raw(`
		SELECT count(*)
		FROM orders
		WHERE cardinality(?::text[]) = 0 OR status = ANY(?::text[])
	`, filter, filter).Row().Scan(&page.Total)
	if err != nil {
		return nil, err
	}

	rows, err := db.Raw(`
		SELECT
			id,
			order_number,
			status,
			currency,
			total,
			tracking_number,
			created_at
		FROM orders
		WHERE cardinality(?::text[]) = 0 OR status = ANY(?::text[])
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, filter, filter, query.PageSize(), (query.Page()-1)*query.PageSize()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary OrderSummary
			id      uuid.UUID
		)
		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&summary.Status,
			&summary.Currency,
			&summary.Total,
			&summary.TrackingNumber,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		summary.ID = id.String()
		page.Orders = append(page.Orders, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return page, nil
}
