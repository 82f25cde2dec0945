package lesson

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime builds a ClockTime from minutes since midnight.
func NewClockTime(minutes int) ClockTime {
	return ClockTime{Hour: minutes / 60, Minute: minutes % 60}
}

// Minutes returns the minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON writes the time as "HH:MM".
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON reads "HH:MM".
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	c.Hour, c.Minute = t.Hour(), t.Minute()
	return nil
}

// Entry is one (day, time slot, class, subgroup) teaching assignment.
// Entries are built once per refresh and never modified afterwards.
type Entry struct {
	Day          string     `json:"day"`
	LessonNumber *int       `json:"lesson_number"`
	Start        *ClockTime `json:"start"`
	End          *ClockTime `json:"end"`
	ClassName    string     `json:"class_name"`
	Group        string     `json:"group"`
	Subject      string     `json:"subject"`
	Teacher      string     `json:"teacher"`
	Tutor        string     `json:"tutor"`
	Room         string     `json:"room"`
}

// HasInterval reports whether both times are present and end is after start.
func (e Entry) HasInterval() bool {
	return e.Start != nil && e.End != nil && e.End.Minutes() > e.Start.Minutes()
}

// Diagnostics describes one normalization run.
type Diagnostics struct {
	RawRows           int       `json:"raw_rows"`
	RawColumns        int       `json:"raw_columns"`
	RawColumnNames    []string  `json:"raw_column_names"`
	MissingColumns    []string  `json:"missing_columns"`
	Warnings          []string  `json:"warnings"`
	SkippedNoDay      int       `json:"skipped_no_day"`
	SkippedNotLesson  int       `json:"skipped_not_lesson"`
	InvalidTimeRanges int       `json:"invalid_time_ranges"`
	ProcessedRows     int       `json:"processed_rows"`
	ProcessedColumns  int       `json:"processed_columns"`
	LoadedAt          time.Time `json:"loaded_at"`
}
