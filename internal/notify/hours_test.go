package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shekohex/dotai/internal/config"
	"github.com/shekohex/dotai/internal/logging"
)

func boolPtr(b bool) *bool { return &b }

func weekSchedule() map[string]config.DayWindow {
	return map[string]config.DayWindow{
		"monday":    {Start: "09:00", End: "17:00"},
		"tuesday":   {Start: "09:00", End: "17:00"},
		"wednesday": {Start: "09:00", End: "17:00"},
		"thursday":  {Start: "09:00", End: "17:00"},
		"friday":    {Start: "09:00", End: "17:00"},
		"saturday":  {Enabled: boolPtr(false)},
		"sunday":    {Enabled: boolPtr(false)},
	}
}

func gateAt(cfg config.WorkingHours, at time.Time) *Gate {
	g := NewGate(cfg, logging.Nop())
	g.now = func() time.Time { return at }
	return g
}

func TestGateDisabledAlwaysAllows(t *testing.T) {
	cfg := config.WorkingHours{Enabled: false}
	// Sunday 03:00 would be blocked if the gate were on.
	at := time.Date(2026, 8, 23, 3, 0, 0, 0, time.UTC)
	assert.True(t, gateAt(cfg, at).Allow())
}

func TestGateWeekdayWindow(t *testing.T) {
	cfg := config.WorkingHours{Enabled: true, Timezone: "UTC", Schedule: weekSchedule()}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday mid-morning", time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC), true},
		{"monday start boundary", time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), true},
		{"monday end boundary", time.Date(2026, 8, 24, 17, 0, 0, 0, time.UTC), true},
		{"monday before hours", time.Date(2026, 8, 24, 8, 59, 0, 0, time.UTC), false},
		{"monday after hours", time.Date(2026, 8, 24, 17, 1, 0, 0, time.UTC), false},
		{"saturday disabled", time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gateAt(cfg, tt.at).Allow())
		})
	}
}

func TestGateSpansMidnight(t *testing.T) {
	cfg := config.WorkingHours{
		Enabled:  true,
		Timezone: "UTC",
		Schedule: map[string]config.DayWindow{
			"monday": {Start: "22:00", End: "06:00"},
		},
	}

	monday := func(h, m int) time.Time {
		return time.Date(2026, 8, 24, h, m, 0, 0, time.UTC)
	}

	assert.True(t, gateAt(cfg, monday(23, 0)).Allow())
	assert.True(t, gateAt(cfg, monday(5, 30)).Allow())
	assert.False(t, gateAt(cfg, monday(12, 0)).Allow())
}

func TestGateTimezone(t *testing.T) {
	cfg := config.WorkingHours{Enabled: true, Timezone: "Asia/Shanghai", Schedule: weekSchedule()}

	// 02:00 UTC Monday is 10:00 Monday in Shanghai, inside the window.
	at := time.Date(2026, 8, 24, 2, 0, 0, 0, time.UTC)
	assert.True(t, gateAt(cfg, at).Allow())

	// 14:00 UTC Monday is 22:00 in Shanghai, outside.
	at = time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
	assert.False(t, gateAt(cfg, at).Allow())
}

func TestGateInvalidTimezoneFallsBackToUTC(t *testing.T) {
	cfg := config.WorkingHours{Enabled: true, Timezone: "Not/AZone", Schedule: weekSchedule()}

	at := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	assert.True(t, gateAt(cfg, at).Allow())
	at = time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC)
	assert.False(t, gateAt(cfg, at).Allow())
}

func TestGateMissingDayDenies(t *testing.T) {
	cfg := config.WorkingHours{
		Enabled:  true,
		Timezone: "UTC",
		Schedule: map[string]config.DayWindow{"tuesday": {Start: "09:00", End: "17:00"}},
	}
	at := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) // monday
	assert.False(t, gateAt(cfg, at).Allow())
}

func TestGateMissingTimesDenies(t *testing.T) {
	cfg := config.WorkingHours{
		Enabled:  true,
		Timezone: "UTC",
		Schedule: map[string]config.DayWindow{"monday": {Start: "09:00"}},
	}
	at := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	assert.False(t, gateAt(cfg, at).Allow())
}

func TestGateBadClockFailsOpen(t *testing.T) {
	cfg := config.WorkingHours{
		Enabled:  true,
		Timezone: "UTC",
		Schedule: map[string]config.DayWindow{"monday": {Start: "nine", End: "17:00"}},
	}
	at := time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)
	assert.True(t, gateAt(cfg, at).Allow())
}

func TestParseClock(t *testing.T) {
	m, err := parseClock("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 570, m)

	_, err = parseClock("25:00")
	assert.Error(t, err)
}
