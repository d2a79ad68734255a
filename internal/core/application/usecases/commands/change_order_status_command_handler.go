package commands

import (
	"context"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies operator driven status changes using the
// strict transition table.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewChangeOrderStatusCommandHandler creates a handler for operator status changes.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads the order, applies the transition and saves it.
//
// Returns:
//   - *errs.ObjectNotFoundError when the order does not exist
//   - *order.InvalidTransitionError when the edge is not in the transition table
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o == nil {
		return errs.NewObjectNotFoundError("orderId", cmd.OrderID().String())
	}

	if err = o.Transition(cmd.Target(), cmd.Reason(), cmd.Author(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
