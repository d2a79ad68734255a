package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"climasite/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> Paid ──┬──> Processing ──┬──> Shipped ──> Delivered ──> Refunded
//	   │      │     ^     │                 │
//	   │      v     │     ├──> Refunded     └──> Cancelled
//	   │   PaymentFailed  └──> Cancelled
//	   │      │
//	   └──────┴──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of an order created at checkout.
	Pending

	// Paid indicates the payment gateway confirmed the charge.
	Paid

	// PaymentFailed indicates the gateway declined the payment. The customer may retry.
	PaymentFailed

	// Processing indicates the warehouse is preparing the shipment.
	Processing

	// Shipped indicates the parcel was handed to the carrier.
	Shipped

	// Delivered indicates the carrier confirmed delivery.
	Delivered

	// Cancelled is terminal.
	Cancelled

	// Refunded is terminal.
	Refunded
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid order status transition")

// transitions is the static lifecycle table. Absent or empty rows are terminal.
var transitions = map[Status][]Status{
	Pending:       {Paid, PaymentFailed, Cancelled},
	PaymentFailed: {Paid, Cancelled},
	Paid:          {Processing, Cancelled, Refunded},
	Processing:    {Shipped, Cancelled},
	Shipped:       {Delivered},
	Delivered:     {Refunded},
	Cancelled:     {},
	Refunded:      {},
}

var statusNames = map[Status]string{
	Pending:       "Pending",
	Paid:          "Paid",
	PaymentFailed: "PaymentFailed",
	Processing:    "Processing",
	Shipped:       "Shipped",
	Delivered:     "Delivered",
	Cancelled:     "Cancelled",
	Refunded:      "Refunded",
}

// InvalidTransitionError reports an attempt to move an order along an edge that
// is not in the transition table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot change status from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Paid, PaymentFailed, Processing, Shipped, Delivered, Cancelled, Refunded}
}

// AllowedTransitions returns a copy of the transition table.
func AllowedTransitions() map[Status][]Status {
	table := make(map[Status][]Status, len(transitions))
	for from, to := range transitions {
		table[from] = slices.Clone(to)
	}
	return table
}

// ParseStatus converts an external status name into a Status.
// Matching is case-insensitive and accepts snake_case ("payment_failed").
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	for status, statusName := range statusNames {
		if strings.ToLower(statusName) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known order status", name),
	)
}

// Validate checks if the Status value is one of the lifecycle states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for values outside the enum.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// AllowedNext returns the statuses directly reachable from s.
func (s Status) AllowedNext() []Status {
	return slices.Clone(transitions[s])
}

// CanTransitionTo reports whether target is directly reachable from s.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(transitions[s], target)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}

// IsRefundable reports whether money has been captured for an order in status s
// and can still be returned. The payment gateway may refund from any of these.
func (s Status) IsRefundable() bool {
	switch s { //nolint:exhaustive // only captured, not yet refunded states qualify
	case Paid, Processing, Shipped, Delivered:
		return true
	default:
		return false
	}
}

// Reachable returns every status reachable from s through one or more transitions.
func (s Status) Reachable() []Status {
	seen := map[Status]bool{}
	queue := slices.Clone(transitions[s])
	var result []Status
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		result = append(result, next)
		queue = append(queue, transitions[next]...)
	}
	return result
}
