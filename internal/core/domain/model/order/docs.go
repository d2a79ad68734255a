// Package order provides the Order aggregate of the ClimaSite storefront and the
// rules that govern its lifecycle.
//
// The package includes:
//   - Order: The aggregate root holding identity, pricing, shipment data, status and audit notes
//   - Status: The lifecycle states and the static table of legal transitions between them
//   - Note: One entry of the append-only audit trail
//   - LineItem: A purchased product line, immutable once the order exists
//
// Key business rules:
//   - Status only moves along edges of the transition table:
//     Pending -> Paid | PaymentFailed | Cancelled
//     PaymentFailed -> Paid | Cancelled
//     Paid -> Processing | Cancelled | Refunded
//     Processing -> Shipped | Cancelled
//     Shipped -> Delivered
//     Delivered -> Refunded
//     Cancelled and Refunded are terminal
//   - paidAt, shippedAt, deliveredAt and cancelledAt are stamped once, the first
//     time the matching status is entered
//   - Notes are only ever appended
//   - A payment intent id can be attached once
//
// Nothing in this package performs I/O or locking. Callers load the aggregate,
// mutate it through its methods and persist it while holding an exclusive lease
// on the order record.
package order
