// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the orders table. Items and notes live in child tables.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"size:32;uniqueIndex:ux_orders_order_number"`
	Status          string    `gorm:"size:32"`
	PaymentIntentID *string   `gorm:"size:255"`
	TrackingNumber  string    `gorm:"size:128"`
	ShippingMethod  string    `gorm:"size:128"`
	Currency        string    `gorm:"type:char(3)"`
	Subtotal        int64
	Shipping        int64
	Tax             int64
	Discount        int64
	Total           int64
	CreatedAt       time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	UpdatedAt       time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Notes []OrderNoteDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line of the order_items table.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	SKU       string    `gorm:"column:sku;size:64"`
	Name      string    `gorm:"size:255"`
	Quantity  int
	UnitPrice int64
}

// TableName specifies the database table name for order lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderNoteDTO represents one audit trail entry. Seq is the zero-based position
// of the note in the order's trail.
type OrderNoteDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	Author    string `gorm:"size:255"`
	Text      string `gorm:"type:text"`
}

// TableName specifies the database table name for order notes.
func (OrderNoteDTO) TableName() string {
	return "order_notes"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	var paymentIntentID *string
	if pi := o.PaymentIntentID(); pi != "" {
		paymentIntentID = &pi
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			SKU:       item.SKU(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	notes := make([]OrderNoteDTO, 0, len(o.Notes()))
	for i, n := range o.Notes() {
		notes = append(notes, OrderNoteDTO{
			OrderID:   id,
			Seq:       i,
			CreatedAt: n.At(),
			Author:    n.Author(),
			Text:      n.Text(),
		})
	}

	return OrderDTO{
		ID:              id,
		OrderNumber:     o.OrderNumber(),
		Status:          o.Status().String(),
		PaymentIntentID: paymentIntentID,
		TrackingNumber:  o.TrackingNumber(),
		ShippingMethod:  o.ShippingMethod(),
		Currency:        o.Currency(),
		Subtotal:        o.Subtotal().Amount(),
		Shipping:        o.Shipping().Amount(),
		Tax:             o.Tax().Amount(),
		Discount:        o.Discount().Amount(),
		Total:           o.Total().Amount(),
		CreatedAt:       o.CreatedAt(),
		PaidAt:          o.PaidAt(),
		ShippedAt:       o.ShippedAt(),
		DeliveredAt:     o.DeliveredAt(),
		CancelledAt:     o.CancelledAt(),
		Items:           items,
		Notes:           notes,
	}
}

// toDomain converts a database DTO with preloaded items and notes to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	money := func(amount int64) (kernel.Money, error) {
		return kernel.NewMoney(amount, dto.Currency)
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := money(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.SKU, itemDTO.Name, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	notes := make([]order.Note, 0, len(dto.Notes))
	for _, noteDTO := range dto.Notes {
		notes = append(notes, order.NewNote(noteDTO.CreatedAt, noteDTO.Author, noteDTO.Text))
	}

	shipping, err := money(dto.Shipping)
	if err != nil {
		return nil, err
	}
	tax, err := money(dto.Tax)
	if err != nil {
		return nil, err
	}
	discount, err := money(dto.Discount)
	if err != nil {
		return nil, err
	}

	var paymentIntentID string
	if dto.PaymentIntentID != nil {
		paymentIntentID = *dto.PaymentIntentID
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		OrderNumber:     dto.OrderNumber,
		Status:          status,
		PaymentIntentID: paymentIntentID,
		TrackingNumber:  dto.TrackingNumber,
		ShippingMethod:  dto.ShippingMethod,
		Items:           items,
		Shipping:        shipping,
		Tax:             tax,
		Discount:        discount,
		Notes:           notes,
		CreatedAt:       dto.CreatedAt,
		PaidAt:          dto.PaidAt,
		ShippedAt:       dto.ShippedAt,
		DeliveredAt:     dto.DeliveredAt,
		CancelledAt:     dto.CancelledAt,
	})
}
