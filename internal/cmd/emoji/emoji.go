// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across
// commands. They are used for per-repository outcome markers and user
// feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: applied reconciliations, passing validation.
	Success = "✓"

	// Error represents failures.
	// Used for: failed platform calls, validation errors.
	Error = "✗"

	// Warning represents warnings or deliberately skipped work.
	// Used for: skipped delete entries, banner parse ambiguity.
	Warning = "!"

	// Optional represents no-op outcomes.
	// Used for: repositories already matching their spec.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	Unknown = "?"

	// Info represents informational messages.
	Info = "i"
)
