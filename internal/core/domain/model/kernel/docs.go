// Package kernel provides the domain primitives shared by the order, driver, docket
// and summary models.
//
// The package includes:
//   - BusinessDate: the calendar date an order batch belongs to
//   - PostCode: a postal code coerced to an integer for coverage range matching
//   - currency helpers over shopspring/decimal (rounding, placeholder prices)
//
// Value objects are immutable and validated at construction; zero values fail
// Validate so they cannot silently flow into persistence.
package kernel
