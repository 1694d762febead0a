// Package errors provides the initialization error kind and sentinel errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// InitError is the single error kind raised by standalone initialization.
// Kind is one of the sentinels in this package and is what errors.Is matches.
type InitError struct {
	// Kind is the sentinel classifying the failure (required).
	Kind error

	// Message is the specific description (required).
	Message string

	// Location is the path or URI the failure relates to (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)
	if e.Location != "" {
		b.WriteString(" (")
		b.WriteString(e.Location)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *InitError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the kind of this error.
func (e *InitError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// Detail renders the error with its hint for terminal output.
func (e *InitError) Detail() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Kind.Error())
	b.WriteString("\n")
	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")
	if e.Cause != nil {
		b.WriteString("  Cause: ")
		b.WriteString(e.Cause.Error())
		b.WriteString("\n")
	}
	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// New creates an InitError of the given kind.
func New(kind error, message string) *InitError {
	return &InitError{Kind: kind, Message: message}
}

// Newf creates an InitError of the given kind with a formatted message.
func Newf(kind error, format string, args ...any) *InitError {
	return &InitError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithLocation sets the location and returns the error for chaining.
func (e *InitError) WithLocation(location string) *InitError {
	e.Location = location
	return e
}

// WithHint sets the hint and returns the error for chaining.
func (e *InitError) WithHint(hint string) *InitError {
	e.Hint = hint
	return e
}

// WithCause sets the cause and returns the error for chaining.
func (e *InitError) WithCause(cause error) *InitError {
	e.Cause = cause
	return e
}

// NewLocationNotFoundError creates a location-not-found error.
func NewLocationNotFoundError(message, location string) error {
	return &InitError{
		Kind:     ErrLocationNotFound,
		Message:  message,
		Location: location,
		Hint:     "Pass the name of the folder that actually contains the project, not its logical name",
	}
}

// NewScanIOError creates a scan I/O error wrapping cause.
func NewScanIOError(message, location string, cause error) error {
	return &InitError{
		Kind:     ErrScanIO,
		Message:  message,
		Location: location,
		Cause:    cause,
	}
}

// NewLoadFailureError creates a load failure error wrapping cause.
func NewLoadFailureError(message, location string, cause error) error {
	return &InitError{
		Kind:     ErrLoadFailure,
		Message:  message,
		Location: location,
		Hint:     "Please check preconditions: the project must be registered before its metamodels",
		Cause:    cause,
	}
}

// KindOf returns the sentinel kind of err, or nil if err is not an InitError.
func KindOf(err error) error {
	var ie *InitError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return nil
}
