package queries

import (
	"errors"
	"fmt"
	"time"

	"climasite/internal/core/domain/model/order"
	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders, newest first, optionally restricted to
// a set of statuses.
//
// Example:
//
//	query, err := NewListOrdersQuery([]string{"Paid", "Processing"}, 1, 20)
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	statuses []order.Status
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. Zero page and pageSize use defaults.
// Status names are parsed case-insensitively.
func NewListOrdersQuery(statusNames []string, page, pageSize int) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is less than 1", page))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}

	statuses := make([]order.Status, 0, len(statusNames))
	for _, name := range statusNames {
		status, err := order.ParseStatus(name)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		statuses = append(statuses, status)
	}

	return ListOrdersQuery{
		statuses: statuses,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Statuses returns the status filter. Empty means all statuses.
func (q ListOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

// Page returns the one-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of orders per page.
func (q ListOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrderSummary is one row of the admin order listing.
type OrderSummary struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	Status         string    `json:"status"`
	Currency       string    `json:"currency"`
	Total          int64     `json:"total"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OrderPage is a page of order summaries with the total number of matches.
type OrderPage struct {
	Orders   []OrderSummary `json:"orders"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
}
