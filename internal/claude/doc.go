// Package claude manages the Claude Code settings.json file. It
// registers and removes the claude-notify hook commands while preserving
// every other field in the file.
//
// The package supports:
//   - Loading and parsing Claude settings files
//   - Adding hook entries idempotently per event
//   - Removing hook entries by command prefix
//   - Atomic file writes to prevent corruption
package claude
