package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"schedule-server/cli/ui"
)

const version = "0.1.0"

var (
	scheduleFile string
	sheetName    string
	layoutFile   string
	verbose      bool
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "schedctl",
	Short:   "School schedule inspection CLI",
	Version: version,
	Long: `A command-line tool for reading a weekly school schedule workbook,
listing the normalized lessons and reporting teachers, tutors and rooms
that are double-booked.`,
	Example: `  # List Monday lessons of one class
  $ schedctl lessons -f schedule.xlsx --day Monday --class "Grade 5"

  # Show room conflicts using a custom sheet layout
  $ schedctl conflicts -f schedule.xlsx --layout resources/schedule_layout_ru.json --type room`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(fmt.Sprintf("schedctl version %s\n", version))
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&scheduleFile, "file", "f", "", "schedule workbook (.xlsx or .csv)")
	rootCmd.PersistentFlags().StringVarP(&sheetName, "sheet", "s", "", "sheet name (default: active sheet)")
	rootCmd.PersistentFlags().StringVar(&layoutFile, "layout", "", "sheet layout JSON (default: built-in layout)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show pipeline logs")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(conflictsCmd)

	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}` + ui.Styles.Bold.Render("GLOBAL OPTIONS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}
