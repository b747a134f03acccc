package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending notifications and effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "status")
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base directory:  %s\n", a.baseDir)
			fmt.Fprintf(out, "Topic:           %s\n", a.cfg.Notifications.NtfyTopic)
			fmt.Fprintf(out, "Notify delay:    %s\n", a.cfg.Delay())
			fmt.Fprintf(out, "Activity window: %s\n", a.cfg.Window())
			fmt.Fprintf(out, "Working hours:   enabled=%t timezone=%s\n",
				a.cfg.WorkingHours.Enabled, a.cfg.WorkingHours.Timezone)

			pending, err := a.store.ListPendingNotifications(cmd.Context())
			if err != nil {
				return err
			}

			if len(pending) == 0 {
				fmt.Fprintln(out, "\nNo pending notifications.")
				return nil
			}

			fmt.Fprintf(out, "\nPending notifications (%d):\n", len(pending))
			for _, n := range pending {
				watcher := "unclaimed"
				if n.WatcherPID > 0 {
					watcher = fmt.Sprintf("watcher %d", n.WatcherPID)
				}
				fmt.Fprintf(out, "  #%d [%s] session=%s due=%s (%s) %q\n",
					n.ID, n.Type, n.SessionID,
					n.SendAfter.Format(time.RFC3339),
					watcher, n.Message)
			}
			return nil
		},
	}
}
