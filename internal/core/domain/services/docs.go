// Package services provides domain services for the ClimaSite order lifecycle.
// They implement policies that need more context than a single aggregate method.
//
// The package includes:
//   - PaymentReconciler: applies payment gateway events to orders idempotently
//
// Domain services perform no I/O. Loading and saving orders is left to the
// application layer.
package services
