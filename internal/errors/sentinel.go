package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrLocationNotFound indicates the root folder segment is absent from a resolved path,
	// or that a logical project name has no registered location.
	ErrLocationNotFound = errors.New("location not found")

	// ErrScanIO indicates a directory walk or descriptor read failed.
	ErrScanIO = errors.New("scan I/O error")

	// ErrNoProjectsFound indicates a complete walk found zero descriptor artifacts.
	ErrNoProjectsFound = errors.New("no projects found")

	// ErrLoadFailure indicates a metadata package resource could not be loaded.
	ErrLoadFailure = errors.New("load failure")

	// ErrMissingURI indicates a registration step had no resolvable location.
	ErrMissingURI = errors.New("missing URI")

	// ErrValidation indicates a configuration schema validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file or directory was not found.
	ErrNotFound = errors.New("not found")
)
