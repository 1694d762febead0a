package errors

import "errors"

// Exit codes returned by the standalone CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates configuration validation failed.
	ExitValidationError = 2

	// ExitNotFound indicates a location, project or file was not found.
	ExitNotFound = 3

	// ExitScanError indicates a directory scan failed.
	ExitScanError = 4

	// ExitLoadError indicates a metadata package could not be loaded.
	ExitLoadError = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// The outermost kind classifies the failure; causes may carry other kinds.
	if kind := KindOf(err); kind != nil {
		err = kind
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrLocationNotFound),
		errors.Is(err, ErrNoProjectsFound),
		errors.Is(err, ErrMissingURI),
		errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrScanIO):
		return ExitScanError
	case errors.Is(err, ErrLoadFailure):
		return ExitLoadError
	default:
		return ExitGeneralError
	}
}
