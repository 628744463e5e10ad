// Package errs provides the standardized error types used across the
// BazaarLink delivery service.
//
// Each error kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - an Error() method producing a single-line message
//   - an Unwrap() method pointing at the sentinel
//
// Domain and application code return these kinds; the transport layer maps
// each sentinel onto a status code without inspecting messages. Causes are
// sanitized to a single line so they compose safely with structured logs.
package errs
