package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shekohex/dotai/internal/claude"
	"github.com/shekohex/dotai/internal/hook"
)

// hookCommand renders the settings.json command line for an event.
func hookCommand(binary, event string) string {
	return fmt.Sprintf("%s hook %s", binary, event)
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Register the claude-notify hooks in ~/.claude/settings.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolving executable: %w", err)
			}

			settings, err := claude.Load()
			if err != nil {
				return err
			}

			added := 0
			for _, event := range hook.ValidEvents {
				if settings.AddHook(event, hookCommand(exe, event)) {
					added++
				}
			}

			if added == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Hooks already registered, nothing to do.")
				return nil
			}
			if err := settings.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d hooks in %s\n", added, settings.FilePath())
			return nil
		},
	}
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the claude-notify hooks from ~/.claude/settings.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := claude.Load()
			if err != nil {
				return err
			}

			// Match both the current binary path and any stale install
			// locations by stripping down to the command name.
			removed := 0
			if exe, err := os.Executable(); err == nil {
				removed += settings.RemoveHooks(exe + " hook ")
			}
			removed += settings.RemoveHooks("claude-notify hook ")

			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No claude-notify hooks registered.")
				return nil
			}
			if err := settings.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d hooks from %s\n", removed, settings.FilePath())
			return nil
		},
	}
}
