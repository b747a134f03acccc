// claude-notify - Delayed notifications for Claude Code sessions
// Source: https://github.com/shekohex/dotai

package main

import (
	"fmt"
	"os"

	// Embedded tzdata keeps the working-hours gate correct on hosts
	// without a zoneinfo database.
	_ "time/tzdata"

	"github.com/shekohex/dotai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}
