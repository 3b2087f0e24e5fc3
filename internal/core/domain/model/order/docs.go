// Package order holds the Order aggregate mirrored from the head-office database
// together with its entities and value objects.
//
// The package includes:
//   - Order: the aggregate root with its running total and commission
//   - Customer, Item: embedded value objects
//   - DriverAssignment: the driver snapshot taken when a driver is located
//   - Docket: the fulfillment record with its opaque rendered artifact
//   - SourceRow: the flat relational row orders are formatted from
//   - Status: Formatted -> Assigned -> Docketed
//
// Key business rules:
//   - Totals and commission always reflect the items accumulated so far
//   - Commission is round(rate × total, 2)
//   - A docketed order is immutable
package order
