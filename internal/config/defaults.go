package config

// GetDefaults returns the default configuration values. Monday through
// Friday get a nine-to-five window; the weekend is disabled. The gate
// itself is off until working_hours.enabled is set.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"notifications.ntfy_topic":           "claude-code",
		"notifications.ntfy_icon":            "https://claude.ai/images/claude_app_icon.png",
		"notifications.ntfy_click":           "",
		"notifications.notify_delay":         30,
		"notifications.activity_window":      90,
		"notifications.notify_tool_activity": false,

		"working_hours.enabled":  false,
		"working_hours.timezone": "UTC",
		"working_hours.schedule": map[string]interface{}{
			"monday":    map[string]interface{}{"start": "09:00", "end": "17:00"},
			"tuesday":   map[string]interface{}{"start": "09:00", "end": "17:00"},
			"wednesday": map[string]interface{}{"start": "09:00", "end": "17:00"},
			"thursday":  map[string]interface{}{"start": "09:00", "end": "17:00"},
			"friday":    map[string]interface{}{"start": "09:00", "end": "17:00"},
			"saturday":  map[string]interface{}{"enabled": false},
			"sunday":    map[string]interface{}{"enabled": false},
		},
	}
}
