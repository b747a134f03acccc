package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shekohex/dotai/internal/hook"
)

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook <EventName>",
		Short: "Process a Claude Code hook event from stdin",
		Long: `Process a Claude Code hook event. The event payload is read as JSON
from stdin; the event name argument must match its hook_event_name
field. Exits non-zero on validation, parse or database failures.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventName := args[0]
			if !hook.ValidEvent(eventName) {
				return fmt.Errorf("invalid hook type: %s. Valid types: %s",
					eventName, strings.Join(hook.ValidEvents, ", "))
			}

			a, err := newApp(cmd, "hook")
			if err != nil {
				return err
			}
			defer a.Close()

			ev, err := hook.Parse(cmd.InOrStdin(), eventName)
			if err != nil {
				a.log.Error().Err(err).Str("event", eventName).Msg("rejected hook payload")
				return err
			}

			if err := a.tracker.Handle(cmd.Context(), ev); err != nil {
				a.log.Error().Err(err).Str("event", eventName).Msg("hook handler failed")
				return err
			}
			return nil
		},
	}
}
