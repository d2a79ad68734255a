package order

import (
	"errors"
	"strings"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
)

const (
	minQuantity = 1
	maxQuantity = 999
)

// LineItem is a product line captured at checkout.
type LineItem struct {
	productID kernel.UUID
	sku       string
	name      string
	quantity  int
	unitPrice kernel.Money
}

// NewLineItem validates and creates a line item.
func NewLineItem(productID kernel.UUID, sku, name string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		productID: productID,
		sku:       strings.TrimSpace(sku),
		name:      strings.TrimSpace(name),
		quantity:  quantity,
		unitPrice: unitPrice,
	}

	var nameErr, priceErr, quantityErr error
	if item.name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := unitPrice.Validate(); err != nil {
		priceErr = err
	} else if unitPrice.IsNegative() {
		priceErr = errs.NewValueIsInvalidError("unitPrice")
	}
	if quantity < minQuantity || quantity > maxQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, minQuantity, maxQuantity)
	}

	if err := errors.Join(productID.Validate(), nameErr, priceErr, quantityErr); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// ProductID returns the purchased product's identifier.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// SKU returns the stock keeping unit, possibly empty.
func (i LineItem) SKU() string {
	return i.sku
}

// Name returns the product name at the time of purchase.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns the number of units.
func (i LineItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of one unit.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price times quantity.
func (i LineItem) LineTotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}
