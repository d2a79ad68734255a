package commands

import (
	"errors"
	"fmt"
	"strings"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

var (
	ErrSetTrackingInfoCommandIsNotConstructed = errors.New(
		"SetTrackingInfoCommand must be created via NewSetTrackingInfoCommand constructor",
	)
	// ErrNothingToUpdate is joined with an errs.ValueIsRequiredError when no
	// tracking field is set. Match it with errors.Is.
	ErrNothingToUpdate = errors.New("tracking number, shipping method or mark shipped is required")
)

// SetTrackingInfoCommand records shipment metadata and optionally marks the
// order as shipped.
//
// Example:
//
//	cmd, err := NewSetTrackingInfoCommand(orderID, "1Z999AA10123456784", "UPS", true, "admin@climasite")
type SetTrackingInfoCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	trackingNumber string
	shippingMethod string
	markShipped    bool
	author         string

	guard guard.ConstructorGuard
}

// NewSetTrackingInfoCommand requires at least one of trackingNumber,
// shippingMethod or markShipped.
func NewSetTrackingInfoCommand(
	orderID kernel.UUID,
	trackingNumber, shippingMethod string,
	markShipped bool,
	author string,
) (SetTrackingInfoCommand, error) {
	cmd := SetTrackingInfoCommand{
		trackingNumber: strings.TrimSpace(trackingNumber),
		shippingMethod: strings.TrimSpace(shippingMethod),
		markShipped:    markShipped,
		author:         strings.TrimSpace(author),
		guard:          guard.NewConstructorGuard(),
	}

	var emptyErr, authorErr error
	if cmd.trackingNumber == "" && cmd.shippingMethod == "" && !markShipped {
		emptyErr = fmt.Errorf("%w: %w", errs.NewValueIsRequiredError("tracking"), ErrNothingToUpdate)
	}
	if cmd.author == "" {
		authorErr = errs.NewValueIsRequiredError("author")
	}

	if err := errors.Join(orderID.Validate(), emptyErr, authorErr); err != nil {
		return SetTrackingInfoCommand{}, err
	}

	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetTrackingInfoCommand) Validate() error {
	return c.guard.Validate(ErrSetTrackingInfoCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c SetTrackingInfoCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TrackingNumber returns the carrier tracking number, possibly empty.
func (c SetTrackingInfoCommand) TrackingNumber() string {
	return c.trackingNumber
}

// ShippingMethod returns the shipping method, possibly empty.
func (c SetTrackingInfoCommand) ShippingMethod() string {
	return c.shippingMethod
}

// MarkShipped reports whether the order should transition to Shipped.
func (c SetTrackingInfoCommand) MarkShipped() bool {
	return c.markShipped
}

// Author returns who requested the update.
func (c SetTrackingInfoCommand) Author() string {
	return c.author
}
