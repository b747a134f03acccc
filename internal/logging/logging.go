// Package logging configures the shared zerolog logger for hook processes.
// Every hook invocation is a separate short-lived process; the log file is
// the only place their timelines interleave, so each entry carries the pid.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing JSON lines to path with size-based rotation.
// component distinguishes hook handlers from watcher processes in the
// shared file.
func New(path, component string) zerolog.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 1,
		MaxAge:     7, // days
	}

	level := ParseLevel(os.Getenv("CLAUDE_NOTIFY_LOG_LEVEL"))

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Int("pid", os.Getpid()).
		Logger()
}

// Nop returns a disabled logger for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
