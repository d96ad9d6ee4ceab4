// Package errs defines the error shapes the API returns.
//
// HTTPError is the framework-level error body (unknown routes, panics,
// invalid payloads). FieldError carries per-field validation failures.
package errs
