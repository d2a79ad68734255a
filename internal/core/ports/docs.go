// Package ports defines the contracts between the order lifecycle core and its
// infrastructure: persistence, transactions, caching and metrics.
// These interfaces establish dependency inversion and keep the core testable.
package ports
