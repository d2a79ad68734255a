package commands

import (
	"context"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
)

// CreateOrderResult identifies the order created by CreateOrderCommandHandler.
type CreateOrderResult struct {
	OrderID     kernel.UUID
	OrderNumber string
}

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates Pending orders with an order number derived from the creation date.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.NewSystemClock())
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates and persists the order. A payment intent already used by another
// order makes the repository fail with ports.ErrConflict.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(
		cmd.OrderID(),
		order.NewOrderNumber(now, cmd.OrderID()),
		cmd.Items(),
		cmd.Shipping(), cmd.Tax(), cmd.Discount(),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}
	if cmd.PaymentIntentID() != "" {
		if err = o.AttachPaymentIntent(cmd.PaymentIntentID()); err != nil {
			return CreateOrderResult{}, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderID: o.ID(), OrderNumber: o.OrderNumber()}, nil
}
