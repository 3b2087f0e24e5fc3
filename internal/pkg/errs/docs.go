// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConnectivityError: For when a store or broker cannot be used
//   - DuplicateWriteError: For when a store rejects a write as already present
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinels double as the failure taxonomy of the synchronization engine:
//   - ErrConnectivity: the collaborator is unusable, the caller may retry with a new session
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: data integrity, fatal
//   - ErrObjectNotFound: a lookup miss that selects a documented fallback
//   - ErrDuplicateWrite: the write already happened
package errs
