package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentIntentAlreadyAttached is joined with an errs.ValueIsInvalidError
	// when a different payment intent is attached to an order that already has
	// one. Match it with errors.Is.
	ErrPaymentIntentAlreadyAttached = errors.New("order already has a payment intent")
)

// Order represents a customer purchase and its fulfillment state. It is the
// aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Line items and monetary fields share one currency and never change after creation
//   - total = subtotal + shipping + tax - discount, and is never negative
//   - Status changes only through Transition, SetTrackingInfo and RecordGatewayRefund
//   - Each lifecycle timestamp is written at most once
//   - Notes are append-only
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human readable reference shown to customers
	orderNumber string

	// status represents the current state in the order lifecycle
	status Status

	// paymentIntentID correlates gateway webhooks with this order
	paymentIntentID string

	trackingNumber string
	shippingMethod string

	items    []LineItem
	subtotal kernel.Money
	shipping kernel.Money
	tax      kernel.Money
	discount kernel.Money
	total    kernel.Money

	// notes is the append-only audit trail, oldest first
	notes []Note

	createdAt   time.Time
	paidAt      *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a Pending order from checkout data. The subtotal is derived
// from the line items; shipping, tax and discount must be non-negative and in the
// items' currency.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, "AC-9000", "Split AC 9000 BTU", 1, price)
//	o, err := order.NewOrder(kernel.NewUUID(), "CS-20260101-1A2B3C4D", []order.LineItem{item},
//	    shipping, tax, discount, clock.Now())
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	items []LineItem,
	shipping, tax, discount kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setPricing(items, shipping, tax, discount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries persisted state into RestoreOrder.
type RestoreParams struct {
	ID              kernel.UUID
	OrderNumber     string
	Status          Status
	PaymentIntentID string
	TrackingNumber  string
	ShippingMethod  string
	Items           []LineItem
	Shipping        kernel.Money
	Tax             kernel.Money
	Discount        kernel.Money
	Notes           []Note
	CreatedAt       time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// RestoreOrder rebuilds an order from persistence. The same invariants as
// NewOrder are checked, plus the validity of the stored status.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		status:          p.Status,
		paymentIntentID: p.PaymentIntentID,
		trackingNumber:  p.TrackingNumber,
		shippingMethod:  p.ShippingMethod,
		notes:           slices.Clone(p.Notes),
		createdAt:       p.CreatedAt.UTC(),
		paidAt:          copyTime(p.PaidAt),
		shippedAt:       copyTime(p.ShippedAt),
		deliveredAt:     copyTime(p.DeliveredAt),
		cancelledAt:     copyTime(p.CancelledAt),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setOrderNumber(p.OrderNumber),
		o.setPricing(p.Items, p.Shipping, p.Tax, p.Discount),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human readable order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentIntentID returns the gateway payment intent, or "" when none is attached.
func (o *Order) PaymentIntentID() string {
	return o.paymentIntentID
}

// TrackingNumber returns the carrier tracking number, if any.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// ShippingMethod returns the shipping method, if any.
func (o *Order) ShippingMethod() string {
	return o.shippingMethod
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Currency returns the currency all monetary fields are expressed in.
func (o *Order) Currency() string {
	return o.total.Currency()
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Shipping returns the shipping cost.
func (o *Order) Shipping() kernel.Money {
	return o.shipping
}

// Tax returns the tax amount.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// Discount returns the discount amount.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// Total returns the amount charged to the customer.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Notes returns a copy of the audit trail, oldest first.
func (o *Order) Notes() []Note {
	return slices.Clone(o.notes)
}

// FormattedNotes renders the audit trail for display.
func (o *Order) FormattedNotes() string {
	return FormatNotes(o.notes)
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PaidAt returns when the order first entered Paid, or nil.
func (o *Order) PaidAt() *time.Time {
	return copyTime(o.paidAt)
}

// ShippedAt returns when the order first entered Shipped, or nil.
func (o *Order) ShippedAt() *time.Time {
	return copyTime(o.shippedAt)
}

// DeliveredAt returns when the order first entered Delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// CancelledAt returns when the order first entered Cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return copyTime(o.cancelledAt)
}

// Transition moves the order to target if the transition table allows it.
//
// On success the status is updated, the target's lifecycle timestamp is stamped
// when still unset, and a note "Status changed to {target}" (followed by
// ": {reason}" when reason is not blank) is appended.
//
// Returns:
//   - nil on success
//   - *errs.ValueIsInvalidError if target is not a lifecycle status
//   - *InvalidTransitionError if the edge is not in the table; the order is left untouched
//
// Example:
//
//	if err := o.Transition(order.Shipped, "handed to DHL", "admin@climasite", clock.Now()); err != nil {
//	    var invalid *order.InvalidTransitionError
//	    if errors.As(err, &invalid) {
//	        // surface to the operator
//	    }
//	}
func (o *Order) Transition(target Status, reason, author string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}

	o.apply(target, reason, author, now)
	return nil
}

// AppendNote adds an entry to the audit trail. Existing entries are never modified.
func (o *Order) AppendNote(author, text string, now time.Time) {
	o.notes = append(o.notes, NewNote(now, author, text))
}

// SetTrackingInfo records shipment metadata. Blank values leave the matching
// field untouched. When markShipped is true the order also transitions to Shipped.
//
// The operation is atomic: if the Shipped transition is illegal from the current
// status, an *InvalidTransitionError is returned and no field is changed.
func (o *Order) SetTrackingInfo(trackingNumber, shippingMethod string, markShipped bool, author string, now time.Time) error {
	if markShipped && !o.status.CanTransitionTo(Shipped) {
		return NewInvalidTransitionError(o.status, Shipped)
	}

	if tn := strings.TrimSpace(trackingNumber); tn != "" {
		o.trackingNumber = tn
	}
	if sm := strings.TrimSpace(shippingMethod); sm != "" {
		o.shippingMethod = sm
	}

	if markShipped {
		reason := ""
		if o.trackingNumber != "" {
			reason = "Tracking number " + o.trackingNumber
		}
		o.apply(Shipped, reason, author, now)
	}

	return nil
}

// AttachPaymentIntent links the order to a gateway payment intent. Attaching the
// same id again is a no-op; attaching a different one fails.
func (o *Order) AttachPaymentIntent(paymentIntentID string) error {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return errs.NewValueIsRequiredError("paymentIntentId")
	}
	if o.paymentIntentID == paymentIntentID {
		return nil
	}
	if o.paymentIntentID != "" {
		return fmt.Errorf("%w: %w", errs.NewValueIsInvalidError("paymentIntentId"), ErrPaymentIntentAlreadyAttached)
	}

	o.paymentIntentID = paymentIntentID
	return nil
}

// RecordGatewayRefund moves a refundable order (Paid, Processing, Shipped or
// Delivered) to Refunded. The payment gateway is authoritative about money
// movement, so the direct edge is not required here, unlike Transition.
//
// Returns *InvalidTransitionError when the order is not refundable.
func (o *Order) RecordGatewayRefund(reason, author string, now time.Time) error {
	if !o.status.IsRefundable() {
		return NewInvalidTransitionError(o.status, Refunded)
	}

	o.apply(Refunded, reason, author, now)
	return nil
}

// apply performs a transition that has already been validated.
func (o *Order) apply(target Status, reason, author string, now time.Time) {
	o.status = target
	o.stamp(target, now.UTC())

	text := fmt.Sprintf("Status changed to %s", target)
	if r := strings.TrimSpace(reason); r != "" {
		text += ": " + r
	}
	o.AppendNote(author, text, now)
}

// stamp sets the lifecycle timestamp belonging to target if it is still unset.
func (o *Order) stamp(target Status, now time.Time) {
	var field **time.Time
	switch target { //nolint:exhaustive // only these statuses carry a timestamp
	case Paid:
		field = &o.paidAt
	case Shipped:
		field = &o.shippedAt
	case Delivered:
		field = &o.deliveredAt
	case Cancelled:
		field = &o.cancelledAt
	default:
		return
	}

	if *field == nil {
		*field = &now
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

// setPricing derives subtotal and total and checks currency consistency.
func (o *Order) setPricing(items []LineItem, shipping, tax, discount kernel.Money) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if err := errors.Join(shipping.Validate(), tax.Validate(), discount.Validate()); err != nil {
		return err
	}

	currency := items[0].UnitPrice().Currency()
	subtotal, err := kernel.ZeroMoney(currency)
	if err != nil {
		return err
	}
	for _, item := range items {
		if subtotal, err = subtotal.Add(item.LineTotal()); err != nil {
			return err
		}
	}

	for name, m := range map[string]kernel.Money{"shipping": shipping, "tax": tax, "discount": discount} {
		if m.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", m))
		}
	}

	total, err := subtotal.Add(shipping)
	if err == nil {
		total, err = total.Add(tax)
	}
	if err == nil {
		total, err = total.Sub(discount)
	}
	if err != nil {
		return err
	}
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discount", fmt.Errorf("discount %s exceeds order value", discount))
	}

	o.items = slices.Clone(items)
	o.subtotal = subtotal
	o.shipping = shipping
	o.tax = tax
	o.discount = discount
	o.total = total
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := t.UTC()
	return &c
}
