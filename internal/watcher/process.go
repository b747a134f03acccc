// Package watcher runs the delayed-delivery state machine. A watcher is
// a detached re-exec of the claude-notify binary that claims exactly one
// notification, waits out its delay while polling for cancellation, and
// delivers it.
package watcher

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Alive reports whether a process with the given pid exists. Signal 0
// probes without delivering; EPERM still means the process is there.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}

// Terminate sends SIGTERM to the pid. A process that is already gone is
// not an error.
func Terminate(pid int) error {
	if pid <= 0 {
		return nil
	}
	err := unix.Kill(pid, unix.SIGTERM)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
