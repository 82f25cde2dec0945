package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"schedule-server/models"
	"schedule-server/models/conflict"
	"schedule-server/models/lesson"
)

// RenderLessons writes lessons as a bordered table.
func RenderLessons(w io.Writer, lessons []lesson.Entry) error {
	rows := make([][]string, 0, len(lessons))
	for _, e := range lessons {
		rows = append(rows, []string{
			e.Day, lessonNumber(e.LessonNumber), timeRange(e),
			e.ClassName, dash(e.Group), e.Subject, dash(e.Teacher), dash(e.Tutor), dash(e.Room),
		})
	}
	t := newTable("DAY", "NO", "TIME", "CLASS", "GROUP", "SUBJECT", "TEACHER", "TUTOR", "ROOM").Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderConflicts writes conflicts as a bordered table, one lesson pair per row.
func RenderConflicts(w io.Writer, records []conflict.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ResourceType.Label(), r.ResourceLabel, r.Day,
			fmt.Sprintf("%d min", r.OverlapMinutes), r.FirstSummary, r.SecondSummary,
		})
	}
	t := newTable("TYPE", "RESOURCE", "DAY", "OVERLAP", "FIRST", "SECOND").Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Styles.TableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.TableHeader
			}
			return Styles.TableCell
		})
}

// RenderSummary draws the snapshot counters in a box, plus a warning box
// listing missing columns when there are any.
func RenderSummary(w io.Writer, snap *models.Snapshot) {
	ld, cd := snap.LessonDiagnostics, snap.ConflictDiagnostics
	lines := []string{
		Styles.Bold.Render("Schedule " + snap.Source),
		"",
		fmt.Sprintf("rows read:           %d (%d columns)", ld.RawRows, ld.RawColumns),
		fmt.Sprintf("lessons:             %d", ld.ProcessedRows),
		fmt.Sprintf("rows without day:    %d", ld.SkippedNoDay),
		fmt.Sprintf("non-lesson slots:    %d", ld.SkippedNotLesson),
		fmt.Sprintf("invalid time ranges: %d", ld.InvalidTimeRanges),
		fmt.Sprintf("conflicts:           %d (person events %d, room events %d)", cd.ConflictsFound, cd.EventsPerson, cd.EventsRoom),
	}
	fmt.Fprintln(w, Styles.SummaryBox.Render(strings.Join(lines, "\n")))

	if len(ld.MissingColumns) > 0 {
		content := strings.Join(ld.Warnings, "\n") + "\n\n" + strings.Join(ld.MissingColumns, ", ")
		fmt.Fprintln(w, Styles.WarningBox.Render(content))
	}
}

func lessonNumber(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

func timeRange(e lesson.Entry) string {
	if e.Start == nil || e.End == nil {
		return "-"
	}
	return e.Start.String() + "-" + e.End.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
