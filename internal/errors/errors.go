// Package errors provides structured error handling for the relkit CLI.
// Errors carry a category matching the failure taxonomy (validation,
// conflict, precondition, external tool) plus optional remediation guidance.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error that occurred.
type Category int

const (
	// Validation errors are caused by malformed configuration: bad mapping
	// syntax, unknown template placeholders, unsupported remote URL schemes.
	Validation Category = iota
	// Conflict errors are caused by mutually exclusive requests, such as
	// asking for two release version components in one invocation.
	Conflict
	// Precondition errors occur when the repository or project state does
	// not support the requested operation (no commits yet, no release
	// component to attach a pre-release qualifier to).
	Precondition
	// External errors wrap failures of external tool invocations (git
	// mutations, the version-bumping tool) with their stderr preserved.
	External
)

// String returns a human-readable name for the error category.
func (c Category) String() string {
	switch c {
	case Validation:
		return "Validation Error"
	case Conflict:
		return "Conflict Error"
	case Precondition:
		return "Precondition Error"
	case External:
		return "External Tool Error"
	default:
		return "Error"
	}
}

// ReleaseError is a structured error with category and remediation guidance.
type ReleaseError struct {
	// Category is the type of error (Validation, Conflict, etc.)
	Category Category
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ReleaseError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ReleaseError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error with remediation steps.
func NewValidationError(message string, remediation ...string) *ReleaseError {
	return &ReleaseError{
		Category:    Validation,
		Message:     message,
		Remediation: remediation,
	}
}

// NewConflictError creates a new conflict error.
func NewConflictError(message string, remediation ...string) *ReleaseError {
	return &ReleaseError{
		Category:    Conflict,
		Message:     message,
		Remediation: remediation,
	}
}

// NewPreconditionError creates a new precondition error.
func NewPreconditionError(message string, remediation ...string) *ReleaseError {
	return &ReleaseError{
		Category:    Precondition,
		Message:     message,
		Remediation: remediation,
	}
}

// NewExternalError creates a new external tool error. The stderr output of
// the failed tool should be folded into the message by the caller so it is
// never lost.
func NewExternalError(message string, remediation ...string) *ReleaseError {
	return &ReleaseError{
		Category:    External,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a ReleaseError, preserving the original
// message and keeping the cause reachable via errors.Unwrap.
func Wrap(err error, category Category, remediation ...string) *ReleaseError {
	if err == nil {
		return nil
	}
	return &ReleaseError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category Category, message string, remediation ...string) *ReleaseError {
	if err == nil {
		return nil
	}
	return &ReleaseError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

// AsReleaseError attempts to convert an error to a ReleaseError.
// Returns nil if the error chain contains no ReleaseError.
func AsReleaseError(err error) *ReleaseError {
	var relErr *ReleaseError
	if stderrors.As(err, &relErr) {
		return relErr
	}
	return nil
}

// IsCategory reports whether err is a ReleaseError of the given category.
func IsCategory(err error, c Category) bool {
	relErr := AsReleaseError(err)
	return relErr != nil && relErr.Category == c
}
