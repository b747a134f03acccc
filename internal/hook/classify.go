package hook

import (
	"strings"

	"github.com/shekohex/dotai/internal/store"
)

// Stored notification types produced by the classifier.
const (
	TypePermission  = "permission"
	TypeWaitingTool = "waiting_tool"
	TypeWaiting     = "waiting"
)

// Keyword sets are checked in order: permission indicators win over tool
// indicators, everything else falls through to plain waiting.
var (
	permissionIndicators = []string{"permission", "allow", "approve", "confirm", "authorize"}
	toolIndicators       = []string{"bash", "command", "script", "file", "write", "edit"}
)

// toolKeywords maps message keywords to tool names. First match in table
// order wins, so "bash" beats "file" inside the same message.
var toolKeywords = []struct {
	keyword string
	tool    string
}{
	{"bash", "Bash"},
	{"command", "Bash"},
	{"terminal", "Bash"},
	{"write", "Write"},
	{"edit", "Edit"},
	{"file", "Write"},
	{"search", "Grep"},
	{"web", "WebFetch"},
}

// Classify inspects a Notification event message and returns the stored
// notification type plus its context metadata. toolName is the event's
// tool_name field, used when a permission request names the tool.
func Classify(message, toolName string) (string, store.ContextInfo) {
	lower := strings.ToLower(message)

	for _, indicator := range permissionIndicators {
		if strings.Contains(lower, indicator) {
			return TypePermission, store.ContextInfo{
				WaitingFor:       "permission",
				ToolName:         toolName,
				RequiresApproval: true,
			}
		}
	}

	for _, indicator := range toolIndicators {
		if strings.Contains(lower, indicator) {
			return TypeWaitingTool, store.ContextInfo{
				WaitingFor: "tool_completion",
				ToolName:   extractTool(lower),
			}
		}
	}

	return TypeWaiting, store.ContextInfo{WaitingFor: "user_input"}
}

// extractTool guesses the tool a lowercased message refers to.
func extractTool(lower string) string {
	for _, kw := range toolKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.tool
		}
	}
	return ""
}
