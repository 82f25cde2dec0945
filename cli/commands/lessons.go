package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"schedule-server/cli/ui"
	"schedule-server/models"
)

var lessonFilters models.LessonFilterParams

// lessonsCmd is the lessons command
var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "list normalized lessons",
	Long: `Read the workbook, flatten it into one lesson per day, slot, class and
subgroup, and print the lessons that match the filters in canonical order.`,
	Example: `  $ schedctl lessons -f schedule.xlsx
  $ schedctl lessons -f schedule.xlsx --person Ivanova --day Tuesday`,
	RunE: runLessons,
}

func init() {
	lessonsCmd.Flags().StringVar(&lessonFilters.Day, "day", "", "weekday name")
	lessonsCmd.Flags().StringVar(&lessonFilters.Class, "class", "", "class name")
	lessonsCmd.Flags().StringVar(&lessonFilters.Teacher, "teacher", "", "teacher name")
	lessonsCmd.Flags().StringVar(&lessonFilters.Person, "person", "", "teacher or tutor name")
	lessonsCmd.Flags().StringVar(&lessonFilters.Subject, "subject", "", "subject")
	lessonsCmd.Flags().StringVar(&lessonFilters.Room, "room", "", "room")

	// Silence usage to avoid showing help on every error
	lessonsCmd.SilenceUsage = true
}

func runLessons(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) > 0 {
		ui.PrintError(out, "unexpected argument: %s", args[0])
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	snap, svc, err := loadSchedule(ctx, scheduleFile, sheetName, layoutFile)
	if err != nil {
		ui.PrintError(out, "failed to load schedule: %v", err)
		return err
	}

	lessons := svc.FilterLessons(snap, lessonFilters)
	ui.RenderSummary(out, snap)
	fmt.Fprintln(out)
	if len(lessons) == 0 {
		ui.PrintWarning(out, "no lessons match the filters")
		return nil
	}
	if err := ui.RenderLessons(out, lessons); err != nil {
		return err
	}
	fmt.Fprintln(out)
	ui.PrintSuccess(out, "%d lessons", len(lessons))
	return nil
}
