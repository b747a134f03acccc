package notify

import (
	"fmt"
	"path/filepath"
)

// content is the fully enriched ntfy payload for one message.
type content struct {
	title    string
	body     string
	tags     string
	click    string
	priority string
	actions  string
}

// enrich builds the per-kind payload. click is the configured click
// target; when empty, click and action buttons are omitted.
func enrich(m Message, click string) content {
	project := "Claude"
	if m.Cwd != "" {
		project = filepath.Base(m.Cwd)
	}

	title := m.Title
	if m.Cwd != "" {
		title = fmt.Sprintf("[%s] %s", project, m.Title)
	}

	c := content{
		title:    title,
		body:     m.Body,
		tags:     "robot,gear",
		click:    click,
		priority: "3",
	}

	switch m.Kind {
	case KindTaskCompleted:
		c.title = fmt.Sprintf("[%s] Task Complete", project)
		c.body = fmt.Sprintf("🎉 %s ✨ Task completed successfully!", m.Body)
		c.tags = "white_check_mark,partying_face"
		c.priority = "3"
		c.actions = buildActions("🔗 Connect", click, true)
	case KindWaitingForInput:
		c.title = fmt.Sprintf("[%s] Waiting for Input", project)
		c.body = fmt.Sprintf("%s Waiting for Response: %s - Please check your terminal", waitingEmoji(m.WaitingFor), m.Body)
		c.tags = "hourglass_flowing_sand,warning"
		c.priority = "4"
		c.actions = buildActions("🚀 Connect Now", click, true)
	case KindToolActivity:
		c.title = fmt.Sprintf("[%s] Tool Activity", project)
		c.body = fmt.Sprintf("%s %s completed: %s", toolEmoji(m.ToolName), m.ToolName, m.Body)
		c.tags = toolTag(m.ToolName) + ",tools"
		c.priority = "2"
		c.actions = buildActions("🔗 Connect", click, false)
	case KindPermissionRequest:
		c.title = fmt.Sprintf("[%s] Permission Required", project)
		c.body = fmt.Sprintf("🚨 PERMISSION REQUIRED 🚨 %s Tool: %s - %s - Immediate attention needed", toolEmoji(m.ToolName), m.ToolName, m.Body)
		c.tags = "lock,warning,shield"
		c.priority = "5"
		c.actions = buildActions("🚨 Connect URGENT", click, true)
	}

	return c
}

// buildActions renders a single ntfy view action, or nothing when no
// click target is configured.
func buildActions(label, target string, clear bool) string {
	if target == "" {
		return ""
	}
	return fmt.Sprintf("view, %s, %s, clear=%t", label, target, clear)
}

func waitingEmoji(waitingFor string) string {
	switch waitingFor {
	case "permission":
		return "🔐"
	case "user_input":
		return "⌨️"
	case "tool_completion":
		return "🔧"
	default:
		return "⏳"
	}
}

func toolEmoji(tool string) string {
	emojis := map[string]string{
		"Bash":         "🐚",
		"Write":        "📝",
		"Edit":         "✏️",
		"Read":         "📖",
		"Grep":         "🔍",
		"Glob":         "🗂️",
		"WebFetch":     "🌐",
		"WebSearch":    "🔎",
		"Task":         "🤖",
		"LS":           "📁",
		"TodoWrite":    "✅",
		"MultiEdit":    "📝",
		"NotebookEdit": "📓",
	}
	if e, ok := emojis[tool]; ok {
		return e
	}
	return "🔧"
}

func toolTag(tool string) string {
	tags := map[string]string{
		"Bash":         "terminal",
		"Write":        "pencil",
		"Edit":         "pencil",
		"Read":         "books",
		"Grep":         "mag",
		"Glob":         "file_folder",
		"WebFetch":     "globe_with_meridians",
		"WebSearch":    "mag_right",
		"Task":         "robot",
		"LS":           "file_folder",
		"TodoWrite":    "white_check_mark",
		"MultiEdit":    "pencil",
		"NotebookEdit": "notebook",
	}
	if t, ok := tags[tool]; ok {
		return t
	}
	return "gear"
}
