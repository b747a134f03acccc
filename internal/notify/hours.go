package notify

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shekohex/dotai/internal/config"
)

// Gate evaluates the working-hours schedule. Evaluation errors fail
// open: a stray off-hours notification beats a silently dropped one.
type Gate struct {
	cfg config.WorkingHours
	now func() time.Time
	log zerolog.Logger
}

// NewGate returns a gate for the given schedule.
func NewGate(cfg config.WorkingHours, log zerolog.Logger) *Gate {
	return &Gate{cfg: cfg, now: time.Now, log: log}
}

// Allow reports whether delivery is permitted right now.
func (g *Gate) Allow() bool {
	if !g.cfg.Enabled {
		return true
	}

	loc, err := time.LoadLocation(g.cfg.Timezone)
	if err != nil {
		g.log.Warn().Str("timezone", g.cfg.Timezone).Msg("invalid timezone, using UTC")
		loc = time.UTC
	}
	now := g.now().In(loc)

	day := strings.ToLower(now.Weekday().String())
	window, ok := g.cfg.Schedule[day]
	if !ok {
		return false
	}
	if window.Enabled != nil && !*window.Enabled {
		return false
	}
	if window.Start == "" || window.End == "" {
		return false
	}

	start, err := parseClock(window.Start)
	if err != nil {
		g.log.Error().Err(err).Str("day", day).Msg("bad working hours start, allowing")
		return true
	}
	end, err := parseClock(window.End)
	if err != nil {
		g.log.Error().Err(err).Str("day", day).Msg("bad working hours end, allowing")
		return true
	}

	cur := now.Hour()*60 + now.Minute()
	if start <= end {
		return start <= cur && cur <= end
	}
	// The window spans midnight, e.g. 22:00 to 06:00.
	return cur >= start || cur <= end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
