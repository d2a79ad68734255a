package commands

import (
	"context"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
)

// SetTrackingInfoCommandHandler updates shipment metadata.
type SetTrackingInfoCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewSetTrackingInfoCommandHandler creates a handler for shipment updates.
func NewSetTrackingInfoCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) SetTrackingInfoCommandHandler {
	return SetTrackingInfoCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle applies the update. When marking shipped fails with
// *order.InvalidTransitionError nothing is saved.
func (h *SetTrackingInfoCommandHandler) Handle(ctx context.Context, cmd SetTrackingInfoCommand) error {
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

	err = o.SetTrackingInfo(cmd.TrackingNumber(), cmd.ShippingMethod(), cmd.MarkShipped(), cmd.Author(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
