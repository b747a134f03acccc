// Package hook parses and handles Claude Code hook events. Each event
// arrives as a JSON object on stdin of a fresh process; the handlers
// coordinate purely through the store.
package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Hook event names as Claude Code sends them.
const (
	EventUserPromptSubmit = "UserPromptSubmit"
	EventStop             = "Stop"
	EventNotification     = "Notification"
	EventPostToolUse      = "PostToolUse"
)

// ValidEvents lists the supported hook event names.
var ValidEvents = []string{EventUserPromptSubmit, EventStop, EventNotification, EventPostToolUse}

// Event is the decoded hook payload. Pointer fields distinguish absent
// or null fields from empty strings during validation.
type Event struct {
	SessionID     *string `json:"session_id"`
	HookEventName *string `json:"hook_event_name"`
	Prompt        *string `json:"prompt"`
	Message       *string `json:"message"`
	Cwd           *string `json:"cwd"`
	ToolName      *string `json:"tool_name"`
}

// requiredFields names the fields that must be present and non-null for
// each event kind.
var requiredFields = map[string][]string{
	EventUserPromptSubmit: {"session_id", "prompt", "cwd", "hook_event_name"},
	EventStop:             {"session_id", "hook_event_name"},
	EventNotification:     {"session_id", "message", "hook_event_name"},
	EventPostToolUse:      {"session_id", "tool_name", "hook_event_name"},
}

// ValidEvent reports whether name is a supported hook event.
func ValidEvent(name string) bool {
	_, ok := requiredFields[name]
	return ok
}

// Parse reads the JSON payload from r and validates it against the
// expected event kind. Any failure here must abort the hook with a
// non-zero exit so Claude Code surfaces the misconfiguration.
func Parse(r io.Reader, expected string) (*Event, error) {
	fields, ok := requiredFields[expected]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", expected)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("no input data received from stdin")
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}

	if deref(ev.HookEventName) != expected {
		return nil, fmt.Errorf("event name mismatch: expected %s, got %s", expected, deref(ev.HookEventName))
	}

	var missing []string
	for _, field := range fields {
		if ev.field(field) == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields for %s: [%s]", expected, strings.Join(missing, " "))
	}

	return &ev, nil
}

func (e *Event) field(name string) *string {
	switch name {
	case "session_id":
		return e.SessionID
	case "hook_event_name":
		return e.HookEventName
	case "prompt":
		return e.Prompt
	case "message":
		return e.Message
	case "cwd":
		return e.Cwd
	case "tool_name":
		return e.ToolName
	default:
		return nil
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
