package commands

import (
	"errors"
	"fmt"
	"strings"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one checkout line as submitted by the storefront.
// UnitPrice is in minor units of the order currency.
type OrderItemInput struct {
	ProductID kernel.UUID
	SKU       string
	Name      string
	Quantity  int
	UnitPrice int64
}

// CreateOrderCommand represents a checkout that produced a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "EUR", items, 1500, 0, 0, "pi_3Nx...")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("Order %s created", result.OrderNumber)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	items           []order.LineItem
	shipping        kernel.Money
	tax             kernel.Money
	discount        kernel.Money
	paymentIntentID string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates checkout data. All amounts share currency.
// paymentIntentID may be empty when the payment intent is created later.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	currency string,
	items []OrderItemInput,
	shipping, tax, discount int64,
	paymentIntentID string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentIntentID: strings.TrimSpace(paymentIntentID),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmounts(currency, items, shipping, tax, discount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will get.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the validated line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	return c.items
}

// Shipping returns the shipping cost.
func (c CreateOrderCommand) Shipping() kernel.Money {
	return c.shipping
}

// Tax returns the tax amount.
func (c CreateOrderCommand) Tax() kernel.Money {
	return c.tax
}

// Discount returns the discount amount.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

// PaymentIntentID returns the gateway payment intent, possibly empty.
func (c CreateOrderCommand) PaymentIntentID() string {
	return c.paymentIntentID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAmounts(currency string, inputs []OrderItemInput, shipping, tax, discount int64) error {
	if len(inputs) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var err error
	if c.shipping, err = kernel.NewMoney(shipping, currency); err != nil {
		return err
	}
	if c.tax, err = kernel.NewMoney(tax, currency); err != nil {
		return err
	}
	if c.discount, err = kernel.NewMoney(discount, currency); err != nil {
		return err
	}

	items := make([]order.LineItem, 0, len(inputs))
	var itemErrs []error
	for i, in := range inputs {
		price, priceErr := kernel.NewMoney(in.UnitPrice, currency)
		if priceErr != nil {
			itemErrs = append(itemErrs, priceErr)
			continue
		}
		item, itemErr := order.NewLineItem(in.ProductID, in.SKU, in.Name, in.Quantity, price)
		if itemErr != nil {
			itemErrs = append(itemErrs, fmt.Errorf("items[%d]: %w", i, itemErr))
			continue
		}
		items = append(items, item)
	}
	if err = errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = items
	return nil
}
