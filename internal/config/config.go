// Package config loads the claude-notify configuration from defaults, the
// JSON config file, and CLAUDE_* environment variables, in that order of
// increasing priority.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration mirrors the claude-notify-config.json layout.
type Configuration struct {
	Notifications Notifications `koanf:"notifications"`
	WorkingHours  WorkingHours  `koanf:"working_hours"`
}

// Notifications holds delivery settings.
type Notifications struct {
	NtfyTopic string `koanf:"ntfy_topic" validate:"required"`
	NtfyIcon  string `koanf:"ntfy_icon"`
	NtfyClick string `koanf:"ntfy_click"`

	// NotifyDelay is the number of seconds a scheduled notification is
	// held before delivery. Zero means deliver immediately.
	NotifyDelay int `koanf:"notify_delay" validate:"min=0,max=86400"`

	// ActivityWindow is the number of seconds of history swept when user
	// or tool activity cancels pending notifications.
	ActivityWindow int `koanf:"activity_window" validate:"min=0,max=86400"`

	// NotifyToolActivity enables low-priority notifications when an
	// important tool finishes.
	NotifyToolActivity bool `koanf:"notify_tool_activity"`
}

// WorkingHours gates delivery to a weekly schedule.
type WorkingHours struct {
	Enabled  bool                 `koanf:"enabled"`
	Timezone string               `koanf:"timezone" validate:"required"`
	Schedule map[string]DayWindow `koanf:"schedule"`
}

// DayWindow is one weekday's delivery window. A day is active when
// Enabled is unset or true and both Start and End are present ("HH:MM").
type DayWindow struct {
	Enabled *bool  `koanf:"enabled"`
	Start   string `koanf:"start"`
	End     string `koanf:"end"`
}

// Delay returns the scheduling delay as a duration.
func (c *Configuration) Delay() time.Duration {
	return time.Duration(c.Notifications.NotifyDelay) * time.Second
}

// Window returns the activity sweep window as a duration.
func (c *Configuration) Window() time.Duration {
	return time.Duration(c.Notifications.ActivityWindow) * time.Second
}

// envKeys maps CLAUDE_-prefixed variable names to config keys. Variables
// outside this table (CLAUDE_NOTIFY_DIR, CLAUDE_NOTIFY_LOG_LEVEL) are
// consumed elsewhere and ignored here.
var envKeys = map[string]string{
	"NTFY_TOPIC":             "notifications.ntfy_topic",
	"NTFY_ICON":              "notifications.ntfy_icon",
	"NTFY_CLICK":             "notifications.ntfy_click",
	"NOTIFY_DELAY":           "notifications.notify_delay",
	"ACTIVITY_WINDOW":        "notifications.activity_window",
	"NOTIFY_TOOL_ACTIVITY":   "notifications.notify_tool_activity",
	"WORKING_HOURS_ENABLED":  "working_hours.enabled",
	"WORKING_HOURS_TIMEZONE": "working_hours.timezone",
}

// Load loads configuration for the given base directory.
// Priority: environment variables > config file > defaults.
func Load(baseDir string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	path := FilePath(baseDir)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("CLAUDE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envTransform maps environment variable names to config keys.
// Example: CLAUDE_NTFY_TOPIC -> notifications.ntfy_topic.
// Returning "" tells koanf to skip the variable.
func envTransform(s string) string {
	const prefix = "CLAUDE_"
	if mapped, ok := envKeys[s[len(prefix):]]; ok {
		return mapped
	}
	return ""
}
