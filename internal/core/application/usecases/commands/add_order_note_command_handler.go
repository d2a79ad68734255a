package commands

import (
	"context"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
)

// AddOrderNoteCommandHandler appends operator notes to orders.
type AddOrderNoteCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewAddOrderNoteCommandHandler creates a handler for operator notes.
func NewAddOrderNoteCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) AddOrderNoteCommandHandler {
	return AddOrderNoteCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle appends the note. Returns *errs.ObjectNotFoundError when the order does not exist.
func (h *AddOrderNoteCommandHandler) Handle(ctx context.Context, cmd AddOrderNoteCommand) error {
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

	o.AppendNote(cmd.Author(), cmd.Text(), h.clock.Now())

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
