// Package errors provides error handling conventions for the mcpdoctor CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// that mirror the diagnostic outcome: 0 healthy, 1 issues detected,
// 2 blocking issues or system failure.
//
// It also re-exports the wrapping helpers from cockroachdb/errors (New,
// Newf, Wrap, Is, As) so call sites use a single errors import.
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := mcperrors.NewUserError(mcperrors.ErrConfigNotFound, "Run: mcpdoctor paths")
//	var exitErr *mcperrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
