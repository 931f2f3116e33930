// Package install orchestrates a watchsmith run: pre-flight checks,
// discovery, the merge itself, validation, rollback, and the stack restart.
package install

import "fmt"

// PreflightError indicates a missing prerequisite or invalid input
// parameter. The filesystem has not been touched.
type PreflightError struct {
	Err error
}

func (e *PreflightError) Error() string { return e.Err.Error() }
func (e *PreflightError) Unwrap() error { return e.Err }

// DiscoveryError indicates that no compose file or no target container
// could be found. The filesystem has not been touched.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string { return e.Err.Error() }
func (e *DiscoveryError) Unwrap() error { return e.Err }

// ValidationError indicates the merged compose file failed post-write
// validation. The original file has already been restored from backup
// when this error is returned.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// NewPreflightError creates a PreflightError with a formatted message.
func NewPreflightError(format string, args ...any) error {
	return &PreflightError{Err: fmt.Errorf(format, args...)}
}

// NewDiscoveryError creates a DiscoveryError with a formatted message.
func NewDiscoveryError(format string, args ...any) error {
	return &DiscoveryError{Err: fmt.Errorf(format, args...)}
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}
