package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-server/models"
	"schedule-server/models/lesson"
)

var testNow = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

func testLayout() Layout {
	return Layout{
		DayColumn:    "Day",
		LessonMarker: "Lesson",
		Weekdays: []WeekdayCode{
			{Code: "MON", Day: "Monday"},
			{Code: "TUE", Day: "Tuesday"},
			{Code: "WED", Day: "Wednesday"},
		},
		Levels: map[Level]LevelColumns{
			LevelPrimary:   {TypeColumn: "P Type", NumberColumn: "P Num", StartColumn: "P Start", EndColumn: "P End"},
			LevelSecondary: {TypeColumn: "S Type", NumberColumn: "S Num", StartColumn: "S Start", EndColumn: "S End"},
		},
		Classes: []ClassConfig{
			{Name: "Grade 1", Level: LevelPrimary, SubjectColumn: "G1 Subject", TeacherColumn: "G1 Teacher", TutorColumn: "G1 Tutor", RoomColumn: "G1 Room"},
			{Name: "Grade 5", Level: LevelSecondary, SubjectColumn: "G5 Subject", TeacherColumn: "G5 Teacher", TutorColumn: "G5 Tutor", RoomColumn: "G5 Room"},
		},
	}
}

// row builds a raw row from text values; blank strings become empty cells.
func row(values map[string]string) models.RawRow {
	r := models.RawRow{}
	for k, v := range values {
		r[k] = models.TextCell(v)
	}
	return r
}

func table(layout Layout, rows ...models.RawRow) *models.RawTable {
	return &models.RawTable{Columns: layout.ExpectedColumns(), Rows: rows}
}

func primaryLesson(day, num, start, end string, extra map[string]string) models.RawRow {
	values := map[string]string{
		"Day": day, "P Type": "lesson", "P Num": num, "P Start": start, "P End": end,
	}
	for k, v := range extra {
		values[k] = v
	}
	return row(values)
}

func ct(h, m int) *lesson.ClockTime {
	return &lesson.ClockTime{Hour: h, Minute: m}
}

func intp(n int) *int { return &n }

func TestNormalize_UntaggedRowProducesOneUngroupedEntry(t *testing.T) {
	layout := testLayout()
	tbl := table(layout, primaryLesson("MON", "1", "09:00", "09:45", map[string]string{
		"G1 Subject": "Math", "G1 Teacher": "Ivanova", "G1 Tutor": "Petrov", "G1 Room": "101",
	}))

	entries, diag := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, lesson.Entry{
		Day:          "Monday",
		LessonNumber: intp(1),
		Start:        ct(9, 0),
		End:          ct(9, 45),
		ClassName:    "Grade 1",
		Group:        "",
		Subject:      "Math",
		Teacher:      "Ivanova",
		Tutor:        "Petrov",
		Room:         "101",
	}, entries[0])
	assert.Equal(t, 1, diag.RawRows)
	assert.Equal(t, 1, diag.ProcessedRows)
	assert.Equal(t, 10, diag.ProcessedColumns)
	assert.Empty(t, diag.MissingColumns)
	assert.Empty(t, diag.Warnings)
	assert.Equal(t, testNow, diag.LoadedAt)
}

func TestNormalize_TaggedSubjectSharesUntaggedRoom(t *testing.T) {
	layout := testLayout()
	tbl := table(layout, primaryLesson("MON", "2", "10:00", "10:45", map[string]string{
		"G1 Subject": "A: Algebra\nB: Geometry",
		"G1 Teacher": "A: Smith\nB: Jones",
		"G1 Room":    "204",
	}))

	entries, _ := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].Group)
	assert.Equal(t, "Algebra", entries[0].Subject)
	assert.Equal(t, "Smith", entries[0].Teacher)
	assert.Equal(t, "B", entries[1].Group)
	assert.Equal(t, "Geometry", entries[1].Subject)
	assert.Equal(t, "Jones", entries[1].Teacher)
	assert.Equal(t, "204", entries[0].Room)
	assert.Equal(t, entries[0].Room, entries[1].Room)
}

func TestNormalize_GroupFromOtherColumnUsesSharedSubject(t *testing.T) {
	layout := testLayout()
	tbl := table(layout, primaryLesson("TUE", "1", "09:00", "09:45", map[string]string{
		"G1 Subject": "English",
		"G1 Room":    "A: 11\nB: 12",
	}))

	entries, _ := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 2)
	for i, want := range []struct{ group, room string }{{"A", "11"}, {"B", "12"}} {
		assert.Equal(t, want.group, entries[i].Group)
		assert.Equal(t, "English", entries[i].Subject)
		assert.Equal(t, want.room, entries[i].Room)
	}
}

func TestNormalize_EmptyGroupSubjectIsSkipped(t *testing.T) {
	layout := testLayout()
	tbl := table(layout, primaryLesson("MON", "3", "11:00", "11:45", map[string]string{
		"G1 Subject": "A: Chess\nB:",
	}))

	entries, _ := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].Group)
}

func TestNormalize_NonLessonRowNeverProducesEntry(t *testing.T) {
	layout := testLayout()
	r := row(map[string]string{
		"Day": "MON", "P Type": "break", "P Num": "1", "P Start": "09:00", "P End": "09:45",
		"G1 Subject": "Math", "G1 Teacher": "Ivanova", "G1 Room": "101",
		"S Type": "LESSON", "S Num": "1", "S Start": "09:00", "S End": "09:45",
		"G5 Subject": "Physics",
	})

	entries, diag := Normalize(table(layout, r), layout, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, "Grade 5", entries[0].ClassName)
	assert.Equal(t, 1, diag.SkippedNotLesson)
}

func TestNormalize_BlankDaySkipsRow(t *testing.T) {
	layout := testLayout()
	tbl := table(layout,
		primaryLesson("", "1", "09:00", "09:45", map[string]string{"G1 Subject": "Math"}),
		primaryLesson("THU", "1", "09:00", "09:45", map[string]string{"G1 Subject": "Art"}),
	)

	entries, diag := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, "THU", entries[0].Day, "unknown codes pass through")
	assert.Equal(t, 1, diag.SkippedNoDay)
}

func TestNormalize_EmptySubjectSkipsClass(t *testing.T) {
	layout := testLayout()
	tbl := table(layout, primaryLesson("MON", "1", "09:00", "09:45", map[string]string{
		"G1 Teacher": "Ivanova", "G1 Room": "101",
	}))

	entries, _ := Normalize(tbl, layout, testNow)
	assert.Empty(t, entries)
}

func TestNormalize_BadTimesDegradeToNull(t *testing.T) {
	layout := testLayout()
	tbl := table(layout,
		primaryLesson("MON", "1", "soon", "09:45", map[string]string{"G1 Subject": "Math"}),
		primaryLesson("MON", "2", "10:45", "10:00", map[string]string{"G1 Subject": "Art"}),
		primaryLesson("MON", "x", "", "", map[string]string{"G1 Subject": "PE"}),
	)

	entries, diag := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Nil(t, e.Start)
		assert.Nil(t, e.End)
	}
	assert.Nil(t, entries[2].LessonNumber, "unparseable slot number sorts last")
	assert.Equal(t, "PE", entries[2].Subject)
	assert.Equal(t, 2, diag.InvalidTimeRanges)
}

func TestNormalize_EveryEntryHasPositiveIntervalOrNone(t *testing.T) {
	layout := testLayout()
	tbl := table(layout,
		primaryLesson("MON", "1", "09:00", "09:45", map[string]string{"G1 Subject": "A"}),
		primaryLesson("MON", "2", "09:45", "09:45", map[string]string{"G1 Subject": "B"}),
		primaryLesson("MON", "3", "", "10:00", map[string]string{"G1 Subject": "C"}),
		primaryLesson("MON", "4", "8:05:59", "9:00:00", map[string]string{"G1 Subject": "D"}),
	)

	entries, _ := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 4)
	for _, e := range entries {
		if e.Start == nil || e.End == nil {
			assert.Nil(t, e.Start)
			assert.Nil(t, e.End)
			continue
		}
		assert.Greater(t, e.End.Minutes(), e.Start.Minutes())
	}
	assert.Equal(t, ct(8, 5), entries[3].Start)
}

func TestNormalize_SortsCanonically(t *testing.T) {
	layout := testLayout()
	secondary := func(day, num, subject string) models.RawRow {
		return row(map[string]string{
			"Day": day, "S Type": "lesson", "S Num": num, "S Start": "12:00", "S End": "12:45",
			"G5 Subject": subject,
		})
	}
	tbl := table(layout,
		secondary("WED", "1", "wed-1"),
		primaryLesson("TUE", "2", "10:00", "10:45", map[string]string{"G1 Subject": "B: tue-2b\nA: tue-2a"}),
		secondary("TUE", "", "tue-none"),
		secondary("MON", "3", "mon-3"),
		secondary("SAT", "1", "sat-1"),
		primaryLesson("TUE", "1", "09:00", "09:45", map[string]string{"G1 Subject": "tue-1"}),
	)

	entries, _ := Normalize(tbl, layout, testNow)

	var got []string
	for _, e := range entries {
		got = append(got, e.Subject)
	}
	assert.Equal(t, []string{"mon-3", "tue-1", "tue-2a", "tue-2b", "tue-none", "wed-1", "sat-1"}, got)
}

func TestNormalize_StableForEqualKeys(t *testing.T) {
	layout := testLayout()
	tbl := table(layout,
		primaryLesson("MON", "1", "09:00", "09:45", map[string]string{"G1 Subject": "first"}),
		primaryLesson("MON", "1", "09:00", "09:45", map[string]string{"G1 Subject": "second"}),
	)

	entries, _ := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Subject)
	assert.Equal(t, "second", entries[1].Subject)
}

func TestNormalize_MissingColumnsAreDiagnosed(t *testing.T) {
	layout := testLayout()
	tbl := &models.RawTable{
		Columns: []string{"Day", "P Type", "P Num", "P Start", "P End", "G1 Subject"},
		Rows: []models.RawRow{
			primaryLesson("MON", "1", "09:00", "09:45", map[string]string{"G1 Subject": "Math"}),
		},
	}

	entries, diag := Normalize(tbl, layout, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Teacher)
	assert.Contains(t, diag.MissingColumns, "G1 Teacher")
	assert.Contains(t, diag.MissingColumns, "S Type")
	assert.NotContains(t, diag.MissingColumns, "G1 Subject")
	assert.Len(t, diag.Warnings, 1)
}

func TestNormalize_NilTableIsNothingToShow(t *testing.T) {
	entries, diag := Normalize(nil, testLayout(), testNow)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Zero(t, diag.RawRows)
}

func TestNormalize_Idempotent(t *testing.T) {
	layout := testLayout()
	tbl := table(layout,
		primaryLesson("TUE", "2", "10:00", "10:45", map[string]string{"G1 Subject": "A: x\nB: y", "G1 Room": "1"}),
		primaryLesson("MON", "1", "09:00", "09:45", map[string]string{"G1 Subject": "z", "G1 Teacher": "T"}),
	)

	first, _ := Normalize(tbl, layout, testNow)
	second, _ := Normalize(tbl, layout, testNow.Add(time.Hour))

	assert.Equal(t, first, second)
}

func TestNormalize_TimeCells(t *testing.T) {
	layout := testLayout()
	r := primaryLesson("MON", "1", "", "", map[string]string{"G1 Subject": "Math"})
	// 45658.375 is 2025-01-01 09:00, 0.40625 is 09:45
	r["P Start"] = models.Cell{Kind: models.CellTime, Text: "1/1/25 09:00", Number: 45658.375}
	r["P End"] = models.Cell{Kind: models.CellTime, Text: "09:45", Number: 0.40625}
	r["P Num"] = models.Cell{Kind: models.CellNumber, Text: "1", Number: 1}

	entries, _ := Normalize(table(layout, r), layout, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, ct(9, 0), entries[0].Start)
	assert.Equal(t, ct(9, 45), entries[0].End)
	assert.Equal(t, intp(1), entries[0].LessonNumber)
}
