package watcher

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Spawn starts a detached watcher process for the notification by
// re-executing this binary with the watch command. The child gets its
// own session so it outlives the hook process; the Wait goroutine reaps
// it if the parent is still around when it exits, and init adopts it
// otherwise.
func Spawn(notificationID int64) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("resolving executable: %w", err)
	}

	cmd := exec.Command(exe, "watch", strconv.FormatInt(notificationID, 10))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	// nil stdio descriptors connect the child to /dev/null.

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawning watcher: %w", err)
	}

	pid := cmd.Process.Pid
	go func() { _ = cmd.Wait() }()
	return pid, nil
}
