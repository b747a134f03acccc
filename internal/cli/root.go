// Package cli provides the Cobra-based claude-notify commands: the hook
// entry point Claude Code invokes, the hidden watch command that runs
// inside watcher processes, and the install, uninstall and status
// utilities.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "claude-notify",
	Short: "Delayed, cancellable notifications for Claude Code sessions",
	Long: `claude-notify - delayed, cancellable notifications for Claude Code

Claude Code invokes "claude-notify hook <EventName>" from its hooks
configuration. Waiting notifications are delayed and delivered through
ntfy unless user activity cancels them first.`,
	Example: `  # Register the hooks in ~/.claude/settings.json
  claude-notify install

  # Show pending notifications and effective configuration
  claude-notify status

  # Invoked by Claude Code (reads the event JSON from stdin)
  echo '{"session_id":"s1","hook_event_name":"Stop"}' | claude-notify hook Stop`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Base directory for config, database and log (default ~/.claude)")

	rootCmd.AddCommand(newHookCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
}
