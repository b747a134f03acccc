// Package notify delivers notifications to the user's devices through the
// ntfy command. Delivery is gated by the working-hours schedule and
// enriched per message kind with tags, priority and action buttons.
package notify

// Kind classifies a delivered notification. Each kind maps to its own
// tag set and ntfy priority so devices can vibrate differently per kind.
type Kind string

const (
	// KindTaskCompleted announces a finished prompt.
	KindTaskCompleted Kind = "task_completed"
	// KindWaitingForInput nags the user that the session is blocked.
	KindWaitingForInput Kind = "waiting_for_input"
	// KindToolActivity reports a completed important tool, low priority.
	KindToolActivity Kind = "tool_activity"
	// KindPermissionRequest flags a pending approval, highest priority.
	KindPermissionRequest Kind = "permission_request"
	// KindGeneral is the fallback for unclassified messages.
	KindGeneral Kind = "general"
)

// Message is a single notification to dispatch.
type Message struct {
	// Title is the base title; the project name derived from Cwd is
	// prefixed during enrichment.
	Title string

	// Body is the notification text before enrichment.
	Body string

	// Cwd is the session working directory, used for the project name.
	Cwd string

	// Kind selects the enrichment profile.
	Kind Kind

	// ToolName names the tool involved, when known.
	ToolName string

	// WaitingFor describes what the session is blocked on
	// (permission, user_input, tool_completion).
	WaitingFor string
}
