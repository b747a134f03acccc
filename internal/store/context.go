package store

import "encoding/json"

// ContextInfo is the classifier metadata persisted in the context_info
// column as JSON.
type ContextInfo struct {
	WaitingFor       string `json:"waiting_for"`
	ToolName         string `json:"tool_name"`
	RequiresApproval bool   `json:"requires_approval"`
}

// JSON renders the context for storage. Falls back to "{}" so the
// column never holds invalid JSON.
func (c ContextInfo) JSON() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ParseContextInfo decodes a stored context_info value. Malformed or
// empty input yields the zero value, matching the delivery defaults.
func ParseContextInfo(s string) ContextInfo {
	var c ContextInfo
	if s == "" {
		return c
	}
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return ContextInfo{}
	}
	return c
}
