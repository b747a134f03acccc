package cli

// Exit codes for the claude-notify CLI. Hook failures must exit non-zero
// so Claude Code surfaces the misconfiguration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates a validation, parse or store failure.
	ExitFailure = 1
)
