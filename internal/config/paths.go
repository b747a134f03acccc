package config

import (
	"os"
	"path/filepath"
)

// File names inside the base directory.
const (
	ConfigFileName   = "claude-notify-config.json"
	DatabaseFileName = "claude-notify.db"
	LogFileName      = "claude-notify.log"
)

// BaseDir returns the directory holding the config file, database and log.
// CLAUDE_NOTIFY_DIR overrides the default ~/.claude.
func BaseDir() string {
	if dir := os.Getenv("CLAUDE_NOTIFY_DIR"); dir != "" {
		return expandHomePath(dir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".claude"
	}
	return filepath.Join(homeDir, ".claude")
}

// FilePath returns the config file path inside baseDir.
func FilePath(baseDir string) string {
	return filepath.Join(baseDir, ConfigFileName)
}

// DatabasePath returns the SQLite database path inside baseDir.
func DatabasePath(baseDir string) string {
	return filepath.Join(baseDir, DatabaseFileName)
}

// LogPath returns the log file path inside baseDir.
func LogPath(baseDir string) string {
	return filepath.Join(baseDir, LogFileName)
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
