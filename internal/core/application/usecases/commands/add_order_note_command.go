package commands

import (
	"errors"
	"strings"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

const maxNoteLength = 2000

var ErrAddOrderNoteCommandIsNotConstructed = errors.New(
	"AddOrderNoteCommand must be created via NewAddOrderNoteCommand constructor",
)

// AddOrderNoteCommand appends a free text entry to an order's audit trail.
type AddOrderNoteCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	author  string
	text    string

	guard guard.ConstructorGuard
}

// NewAddOrderNoteCommand rejects blank text and blank authors.
func NewAddOrderNoteCommand(orderID kernel.UUID, author, text string) (AddOrderNoteCommand, error) {
	cmd := AddOrderNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAuthor(author),
		cmd.setText(text),
	); err != nil {
		return AddOrderNoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderNoteCommandIsNotConstructed)
}

// OrderID returns the order to annotate.
func (c AddOrderNoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Author returns who wrote the note.
func (c AddOrderNoteCommand) Author() string {
	return c.author
}

// Text returns the trimmed note body.
func (c AddOrderNoteCommand) Text() string {
	return c.text
}

func (c *AddOrderNoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderNoteCommand) setAuthor(author string) error {
	author = strings.TrimSpace(author)
	if author == "" {
		return errs.NewValueIsRequiredError("author")
	}

	c.author = author
	return nil
}

func (c *AddOrderNoteCommand) setText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}
	if len(text) > maxNoteLength {
		return errs.NewValueIsOutOfRangeError("text length", len(text), 1, maxNoteLength)
	}

	c.text = text
	return nil
}
