package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newWatchCmd is the watcher process entry point. Hook handlers spawn
// "claude-notify watch <id>" detached; it claims the notification,
// waits out the delay and delivers.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "watch <notification-id>",
		Short:  "Wait for and deliver one scheduled notification",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notification id %q: %w", args[0], err)
			}

			a, err := newApp(cmd, "watcher")
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.runner.Watch(cmd.Context(), id); err != nil {
				a.log.Error().Err(err).Int64("notification_id", id).Msg("watcher failed")
				return err
			}
			return nil
		},
	}
}
