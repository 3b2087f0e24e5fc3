// Package services provides the domain services of the fulfillment core that span
// several aggregates.
//
// The package includes:
//   - OrderFormatter: groups flat relational rows into order documents
//   - DriverLocator: coverage match with nearest-distance fallback
//   - DocketAssembler: driver assignment, commission and docket rendering
package services
