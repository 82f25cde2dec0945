package main

import (
	"fmt"
	"os"
	"strings"

	"schedule-server/cli/commands"
	"schedule-server/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError(os.Stderr, "%s", errMsg)
			fmt.Fprintln(os.Stderr, "\nRun 'schedctl --help' for usage.")
		}
		os.Exit(1)
	}
}
