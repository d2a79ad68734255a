// Package kernel provides the shared value objects of the ClimaSite order domain.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: An amount in minor currency units paired with an ISO 4217 currency code
//   - Clock: The time source injected into handlers so lifecycle timestamps are testable
//
// Values in this package are immutable and safe for concurrent use.
package kernel
