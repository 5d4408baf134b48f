package errors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// Exit codes for the mcpdoctor CLI.
const (
	// ExitHealthy indicates diagnostics completed with no issues.
	ExitHealthy = 0

	// ExitIssues indicates non-blocking issues were detected.
	ExitIssues = 1

	// ExitBlocking indicates critical or high severity issues were detected,
	// or a system-level failure prevented diagnosis.
	ExitBlocking = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrConfigNotFound indicates no configuration file exists at any
	// candidate location.
	ErrConfigNotFound = crdberrors.New("configuration file not found")

	// ErrInvalidProject indicates the project path is empty or malformed.
	ErrInvalidProject = crdberrors.New("invalid project path")

	// ErrSelectionCancelled indicates the user aborted an interactive prompt.
	ErrSelectionCancelled = crdberrors.New("selection cancelled")
)

// Passthroughs to cockroachdb/errors so call sites need a single errors import.
var (
	New    = crdberrors.New
	Newf   = crdberrors.Newf
	Wrap   = crdberrors.Wrap
	Wrapf  = crdberrors.Wrapf
	Is     = crdberrors.Is
	As     = crdberrors.As
	Unwrap = crdberrors.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for the CLI.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitIssues code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitIssues,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitBlocking code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitBlocking,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
