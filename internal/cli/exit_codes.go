package cli

// Exit codes for the relkit CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution, including the
	// documented non-fatal outcomes (no applicable conventional commits,
	// tag already exists).
	ExitSuccess = 0

	// ExitFailure indicates a validation, conflict, precondition or
	// external tool failure.
	ExitFailure = 1

	// ExitUsage indicates an argument-parsing error.
	ExitUsage = 2
)

// ExitError carries an explicit exit code through the cobra error path.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

// Unwrap exposes the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
