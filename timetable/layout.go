package timetable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout is returned when a layout cannot drive normalization.
var ErrInvalidLayout = errors.New("invalid schedule layout")

// Level selects one of the two independent daily time grids.
type Level string

const (
	LevelPrimary   Level = "primary"
	LevelSecondary Level = "secondary"
)

// LevelColumns names the columns of one level's time grid.
type LevelColumns struct {
	TypeColumn   string `json:"type_column"`
	NumberColumn string `json:"number_column"`
	StartColumn  string `json:"start_column"`
	EndColumn    string `json:"end_column"`
}

// ClassConfig maps one class onto its four spreadsheet columns.
type ClassConfig struct {
	Name          string `json:"name"`
	Level         Level  `json:"level"`
	SubjectColumn string `json:"subject_column"`
	TeacherColumn string `json:"teacher_column"`
	TutorColumn   string `json:"tutor_column"`
	RoomColumn    string `json:"room_column"`
}

// WeekdayCode translates a short source code into a canonical weekday name.
// The order of Layout.Weekdays is the canonical weekday order.
type WeekdayCode struct {
	Code string `json:"code"`
	Day  string `json:"day"`
}

// Layout is the static description of the source sheet.
// It is built once at startup and only read afterwards.
type Layout struct {
	DayColumn    string                 `json:"day_column"`
	LessonMarker string                 `json:"lesson_marker"`
	Weekdays     []WeekdayCode          `json:"weekdays"`
	Levels       map[Level]LevelColumns `json:"levels"`
	Classes      []ClassConfig          `json:"classes"`
}

// DefaultLayout returns the layout of the standard school sheet.
func DefaultLayout() Layout {
	classes := []ClassConfig{classColumns("Start group", LevelPrimary)}
	for grade := 1; grade <= 9; grade++ {
		level := LevelPrimary
		if grade >= 5 {
			level = LevelSecondary
		}
		classes = append(classes, classColumns(fmt.Sprintf("Grade %d", grade), level))
	}

	return Layout{
		DayColumn:    "Day",
		LessonMarker: "lesson",
		Weekdays: []WeekdayCode{
			{Code: "MON", Day: "Monday"},
			{Code: "TUE", Day: "Tuesday"},
			{Code: "WED", Day: "Wednesday"},
			{Code: "THU", Day: "Thursday"},
			{Code: "FRI", Day: "Friday"},
		},
		Levels: map[Level]LevelColumns{
			LevelPrimary: {
				TypeColumn:   "Primary Type",
				NumberColumn: "Primary Slot",
				StartColumn:  "Primary Start",
				EndColumn:    "Primary End",
			},
			LevelSecondary: {
				TypeColumn:   "Secondary Type",
				NumberColumn: "Secondary Slot",
				StartColumn:  "Secondary Start",
				EndColumn:    "Secondary End",
			},
		},
		Classes: classes,
	}
}

func classColumns(name string, level Level) ClassConfig {
	return ClassConfig{
		Name:          name,
		Level:         level,
		SubjectColumn: name + " Subject",
		TeacherColumn: name + " Teacher",
		TutorColumn:   name + " Tutor",
		RoomColumn:    name + " Room",
	}
}

// Validate checks that every class points at a known level and every field is named.
func (l Layout) Validate() error {
	var problems []string

	if strings.TrimSpace(l.DayColumn) == "" {
		problems = append(problems, "day column is empty")
	}
	if strings.TrimSpace(l.LessonMarker) == "" {
		problems = append(problems, "lesson marker is empty")
	}
	if len(l.Weekdays) == 0 {
		problems = append(problems, "no weekday codes")
	}
	for level, cols := range l.Levels {
		if level != LevelPrimary && level != LevelSecondary {
			problems = append(problems, fmt.Sprintf("unknown level %q", level))
		}
		if cols.TypeColumn == "" || cols.NumberColumn == "" || cols.StartColumn == "" || cols.EndColumn == "" {
			problems = append(problems, fmt.Sprintf("level %q has unnamed columns", level))
		}
	}
	if len(l.Classes) == 0 {
		problems = append(problems, "no classes")
	}
	seen := make(map[string]struct{}, len(l.Classes))
	for _, c := range l.Classes {
		if c.Name == "" {
			problems = append(problems, "class with empty name")
			continue
		}
		if _, dup := seen[c.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate class %q", c.Name))
		}
		seen[c.Name] = struct{}{}
		if _, ok := l.Levels[c.Level]; !ok {
			problems = append(problems, fmt.Sprintf("class %q uses unknown level %q", c.Name, c.Level))
		}
		if c.SubjectColumn == "" || c.TeacherColumn == "" || c.TutorColumn == "" || c.RoomColumn == "" {
			problems = append(problems, fmt.Sprintf("class %q has unnamed columns", c.Name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLayout, strings.Join(problems, "; "))
	}
	return nil
}

// DayName translates a day code. Unknown codes pass through unchanged.
func (l Layout) DayName(code string) string {
	for _, w := range l.Weekdays {
		if w.Code == code {
			return w.Day
		}
	}
	return code
}

// DayOrder returns the canonical position of a weekday name, 99 when unknown.
func (l Layout) DayOrder(day string) int {
	for i, w := range l.Weekdays {
		if w.Day == day {
			return i + 1
		}
	}
	return 99
}

// DayNames lists the canonical weekday names in order.
func (l Layout) DayNames() []string {
	out := make([]string, 0, len(l.Weekdays))
	for _, w := range l.Weekdays {
		out = append(out, w.Day)
	}
	return out
}

// ExpectedColumns lists every column the layout reads, in layout order, without duplicates.
func (l Layout) ExpectedColumns() []string {
	var cols []string
	seen := make(map[string]struct{})
	add := func(names ...string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			cols = append(cols, n)
		}
	}

	add(l.DayColumn)
	for _, level := range []Level{LevelPrimary, LevelSecondary} {
		if c, ok := l.Levels[level]; ok {
			add(c.TypeColumn, c.NumberColumn, c.StartColumn, c.EndColumn)
		}
	}
	for _, c := range l.Classes {
		add(c.SubjectColumn, c.TeacherColumn, c.TutorColumn, c.RoomColumn)
	}
	return cols
}
