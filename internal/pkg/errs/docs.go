// Package errs provides standardized error types for the prep center engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an object cannot be found (or is not visible to the caller)
//   - UnauthenticatedError, ForbiddenError: missing principal or missing authority
//   - InvalidTransitionError: an illegal status edge
//   - CapacityExceededError: a station admission rejection
//   - ConflictError: a duplicate or lost race on a unique resource
//   - TransientStoreError: store-level contention or timeout, the only retryable kind
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// KindOf folds any error chain into exactly one Kind so that transports can map it
// without inspecting concrete types.
package errs
