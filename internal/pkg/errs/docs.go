// Package errs provides standardized error types for the marketplace services.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsInvalid)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause
//   - Error() for formatting and Unwrap() for classification via errors.Is
//
// The taxonomy mirrors the engine's contract: validation failures, missing
// objects, denied access, invalid status transitions (and their cancellation
// specialization), and store-layer persistence failures. HTTP adapters map
// these types onto the stable wire error codes.
package errs
