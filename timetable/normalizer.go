package timetable

import (
	"sort"
	"strings"
	"time"

	"schedule-server/models"
	"schedule-server/models/lesson"
)

// lessonColumns is the number of fields in a normalized lesson row.
const lessonColumns = 10

const missingColumnsWarning = "Some expected columns were not found in the sheet; part of the schedule may be missing."

// timeslot is one level's time grid read from a raw row.
type timeslot struct {
	number     *int
	start, end *lesson.ClockTime
	lessonType string
	badRange   bool
}

// DetectMissingColumns lists the layout columns absent from the table.
func DetectMissingColumns(table *models.RawTable, layout Layout) []string {
	missing := []string{}
	for _, c := range layout.ExpectedColumns() {
		if !table.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Normalize flattens the wide sheet into one entry per (row, class, subgroup),
// sorted by day, lesson number (missing last), class and group.
// It never fails: bad cells degrade to empty values and are reported in the diagnostics.
func Normalize(table *models.RawTable, layout Layout, now time.Time) ([]lesson.Entry, lesson.Diagnostics) {
	diag := lesson.Diagnostics{
		RawColumnNames: []string{},
		MissingColumns: []string{},
		Warnings:       []string{},
		LoadedAt:       now,
	}
	entries := []lesson.Entry{}

	if table == nil {
		return entries, diag
	}

	diag.RawRows = len(table.Rows)
	diag.RawColumns = len(table.Columns)
	diag.RawColumnNames = append(diag.RawColumnNames, table.Columns...)
	diag.MissingColumns = DetectMissingColumns(table, layout)
	if len(diag.MissingColumns) > 0 {
		diag.Warnings = append(diag.Warnings, missingColumnsWarning)
	}

	marker := strings.ToLower(strings.TrimSpace(layout.LessonMarker))

	for _, row := range table.Rows {
		dayCode := CellText(row.Get(layout.DayColumn))
		if dayCode == "" {
			diag.SkippedNoDay++
			continue
		}
		day := layout.DayName(dayCode)

		slots := make(map[Level]timeslot, len(layout.Levels))
		for _, cfg := range layout.Classes {
			slot, ok := slots[cfg.Level]
			if !ok {
				slot = readTimeslot(row, layout.Levels[cfg.Level])
				slots[cfg.Level] = slot
				if slot.lessonType == marker && slot.badRange {
					diag.InvalidTimeRanges++
				}
			}
			if slot.lessonType != marker {
				diag.SkippedNotLesson++
				continue
			}

			subjects := ParseGroupedCell(row.Get(cfg.SubjectColumn))
			if len(subjects) == 0 {
				continue
			}
			teachers := ParseGroupedCell(row.Get(cfg.TeacherColumn))
			tutors := ParseGroupedCell(row.Get(cfg.TutorColumn))
			rooms := ParseGroupedCell(row.Get(cfg.RoomColumn))

			for _, grp := range CollectGroups(subjects, teachers, tutors, rooms) {
				subject := strings.TrimSpace(subjects.ValueFor(grp))
				if subject == "" {
					continue
				}
				group := grp
				if grp == AllGroups {
					group = ""
				}
				entries = append(entries, lesson.Entry{
					Day:          day,
					LessonNumber: slot.number,
					Start:        slot.start,
					End:          slot.end,
					ClassName:    cfg.Name,
					Group:        group,
					Subject:      subject,
					Teacher:      strings.TrimSpace(teachers.ValueFor(grp)),
					Tutor:        strings.TrimSpace(tutors.ValueFor(grp)),
					Room:         strings.TrimSpace(rooms.ValueFor(grp)),
				})
			}
		}
	}

	SortEntries(entries, layout)

	diag.ProcessedRows = len(entries)
	if len(entries) > 0 {
		diag.ProcessedColumns = lessonColumns
	}
	return entries, diag
}

// readTimeslot reads the level's grid columns. A start/end pair that does not
// form a positive interval is dropped as a whole.
func readTimeslot(row models.RawRow, cols LevelColumns) timeslot {
	slot := timeslot{
		number:     ParseSlotNumber(row.Get(cols.NumberColumn)),
		lessonType: strings.ToLower(CellText(row.Get(cols.TypeColumn))),
	}

	start, okStart := ParseClockTime(row.Get(cols.StartColumn))
	end, okEnd := ParseClockTime(row.Get(cols.EndColumn))
	switch {
	case okStart && okEnd && end.Minutes() > start.Minutes():
		slot.start, slot.end = &start, &end
	case okStart || okEnd:
		slot.badRange = true
	}
	return slot
}

// SortEntries orders entries canonically; equal entries keep their input order.
func SortEntries(entries []lesson.Entry, layout Layout) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if da, db := layout.DayOrder(a.Day), layout.DayOrder(b.Day); da != db {
			return da < db
		}
		if a.LessonNumber == nil || b.LessonNumber == nil {
			if (a.LessonNumber == nil) != (b.LessonNumber == nil) {
				return b.LessonNumber == nil
			}
		} else if *a.LessonNumber != *b.LessonNumber {
			return *a.LessonNumber < *b.LessonNumber
		}
		if a.ClassName != b.ClassName {
			return a.ClassName < b.ClassName
		}
		return a.Group < b.Group
	})
}
