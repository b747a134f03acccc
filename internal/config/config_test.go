package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "claude-code", cfg.Notifications.NtfyTopic)
	assert.Equal(t, "https://claude.ai/images/claude_app_icon.png", cfg.Notifications.NtfyIcon)
	assert.Equal(t, 30, cfg.Notifications.NotifyDelay)
	assert.Equal(t, 90, cfg.Notifications.ActivityWindow)
	assert.False(t, cfg.Notifications.NotifyToolActivity)

	assert.False(t, cfg.WorkingHours.Enabled)
	assert.Equal(t, "UTC", cfg.WorkingHours.Timezone)

	monday := cfg.WorkingHours.Schedule["monday"]
	assert.Equal(t, "09:00", monday.Start)
	assert.Equal(t, "17:00", monday.End)
	assert.Nil(t, monday.Enabled)

	saturday := cfg.WorkingHours.Schedule["saturday"]
	require.NotNil(t, saturday.Enabled)
	assert.False(t, *saturday.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"notifications": {
			"ntfy_topic": "my-topic",
			"notify_delay": 10
		},
		"working_hours": {
			"enabled": true,
			"timezone": "Asia/Shanghai",
			"schedule": {
				"saturday": {"start": "10:00", "end": "14:00"}
			}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "my-topic", cfg.Notifications.NtfyTopic)
	assert.Equal(t, 10, cfg.Notifications.NotifyDelay)
	// Untouched keys keep their defaults.
	assert.Equal(t, 90, cfg.Notifications.ActivityWindow)

	assert.True(t, cfg.WorkingHours.Enabled)
	assert.Equal(t, "Asia/Shanghai", cfg.WorkingHours.Timezone)

	// Partial schedule overrides merge with the default week.
	saturday := cfg.WorkingHours.Schedule["saturday"]
	assert.Equal(t, "10:00", saturday.Start)
	monday := cfg.WorkingHours.Schedule["monday"]
	assert.Equal(t, "09:00", monday.Start)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `{"notifications": {"ntfy_topic": "from-file", "notify_delay": 10}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	t.Setenv("CLAUDE_NTFY_TOPIC", "from-env")
	t.Setenv("CLAUDE_NOTIFY_DELAY", "60")
	t.Setenv("CLAUDE_WORKING_HOURS_ENABLED", "true")
	t.Setenv("CLAUDE_WORKING_HOURS_TIMEZONE", "Europe/Berlin")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Notifications.NtfyTopic)
	assert.Equal(t, 60, cfg.Notifications.NotifyDelay)
	assert.True(t, cfg.WorkingHours.Enabled)
	assert.Equal(t, "Europe/Berlin", cfg.WorkingHours.Timezone)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("CLAUDE_NOTIFY_DELAY", "-5")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"topic", "CLAUDE_NTFY_TOPIC", "notifications.ntfy_topic"},
		{"delay", "CLAUDE_NOTIFY_DELAY", "notifications.notify_delay"},
		{"window", "CLAUDE_ACTIVITY_WINDOW", "notifications.activity_window"},
		{"tool activity", "CLAUDE_NOTIFY_TOOL_ACTIVITY", "notifications.notify_tool_activity"},
		{"hours enabled", "CLAUDE_WORKING_HOURS_ENABLED", "working_hours.enabled"},
		{"hours timezone", "CLAUDE_WORKING_HOURS_TIMEZONE", "working_hours.timezone"},
		{"unrelated is skipped", "CLAUDE_NOTIFY_DIR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envTransform(tt.in))
		})
	}
}

func TestBaseDir(t *testing.T) {
	t.Setenv("CLAUDE_NOTIFY_DIR", "/tmp/notify-test")
	assert.Equal(t, "/tmp/notify-test", BaseDir())
}

func TestBaseDirDefault(t *testing.T) {
	t.Setenv("CLAUDE_NOTIFY_DIR", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude"), BaseDir())
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Configuration{}
	cfg.Notifications.NotifyDelay = 30
	cfg.Notifications.ActivityWindow = 90

	assert.Equal(t, "30s", cfg.Delay().String())
	assert.Equal(t, "1m30s", cfg.Window().String())
}
