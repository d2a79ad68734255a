package commands

import (
	"errors"
	"strings"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand is an operator request to move an order to another status.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, "Processing", "picked in warehouse", "admin@climasite")
//	if err != nil {
//	    return err // unknown status names are invalid arguments
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	reason  string
	author  string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand parses the target status name and validates the input.
func NewChangeOrderStatusCommand(orderID kernel.UUID, status, reason, author string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(status),
		cmd.setAuthor(author),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// Reason returns the optional free text recorded with the transition.
func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

// Author returns who requested the change.
func (c ChangeOrderStatusCommand) Author() string {
	return c.author
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(status string) error {
	target, err := order.ParseStatus(status)
	if err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setAuthor(author string) error {
	author = strings.TrimSpace(author)
	if author == "" {
		return errs.NewValueIsRequiredError("author")
	}

	c.author = author
	return nil
}
