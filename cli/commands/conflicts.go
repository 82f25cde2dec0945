package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"schedule-server/cli/ui"
	"schedule-server/models"
)

var conflictFilters models.ConflictFilterParams

// conflictsCmd is the conflicts command
var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "report double-booked teachers, tutors and rooms",
	Long: `Read the workbook and report every pair of lessons that overlap in time
on the same day while sharing a teacher, tutor or room. Person conflicts
come first, then room conflicts; each group is in weekday order with the
largest overlaps first.`,
	Example: `  $ schedctl conflicts -f schedule.xlsx
  $ schedctl conflicts -f schedule.xlsx --type person -q ivanova`,
	RunE: runConflicts,
}

func init() {
	conflictsCmd.Flags().StringVar(&conflictFilters.Type, "type", "", "resource type: person or room")
	conflictsCmd.Flags().StringVar(&conflictFilters.Day, "day", "", "weekday name")
	conflictsCmd.Flags().StringVarP(&conflictFilters.Query, "query", "q", "", "substring of the teacher, tutor or room name")

	// Silence usage to avoid showing help on every error
	conflictsCmd.SilenceUsage = true
}

func runConflicts(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) > 0 {
		ui.PrintError(out, "unexpected argument: %s", args[0])
		return fmt.Errorf("invalid arguments")
	}
	params := conflictFilters
	params.Type = strings.ToLower(strings.TrimSpace(params.Type))
	if params.Type != "" && params.Type != "person" && params.Type != "room" {
		ui.PrintError(out, "--type must be person or room, got %q", conflictFilters.Type)
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	snap, svc, err := loadSchedule(ctx, scheduleFile, sheetName, layoutFile)
	if err != nil {
		ui.PrintError(out, "failed to load schedule: %v", err)
		return err
	}

	records := svc.FilterConflicts(snap, params)
	ui.RenderSummary(out, snap)
	fmt.Fprintln(out)
	if len(records) == 0 {
		ui.PrintSuccess(out, "no conflicts found")
		return nil
	}
	if err := ui.RenderConflicts(out, records); err != nil {
		return err
	}
	fmt.Fprintln(out)
	ui.PrintWarning(out, "%d conflicts", len(records))
	return nil
}
