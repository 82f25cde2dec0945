package timetable

import (
	"math"
	"strconv"
	"strings"
	"time"

	"schedule-server/models"
	"schedule-server/models/lesson"
)

var clockLayouts = []string{"15:04", "15:04:05"}

// ParseClockTime reads a time of day from a cell.
// Time cells use the fractional part of their Excel serial value; text cells
// must be HH:MM or HH:MM:SS. Anything else is "no time".
func ParseClockTime(c models.Cell) (lesson.ClockTime, bool) {
	switch c.Kind {
	case models.CellTime:
		_, frac := math.Modf(c.Number)
		if frac < 0 {
			frac++
		}
		minutes := int(math.Round(frac * 24 * 60))
		if minutes >= 24*60 {
			minutes = 0
		}
		return lesson.NewClockTime(minutes), true

	case models.CellText:
		s := strings.TrimSpace(c.Text)
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return lesson.ClockTime{Hour: t.Hour(), Minute: t.Minute()}, true
			}
		}
	}
	return lesson.ClockTime{}, false
}

// ParseSlotNumber reads a lesson slot index, truncating fractional numbers.
// Blank, unparseable or non-positive cells yield nil.
func ParseSlotNumber(c models.Cell) *int {
	var f float64
	switch c.Kind {
	case models.CellNumber, models.CellTime:
		f = c.Number
	case models.CellText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return nil
		}
		f = v
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(f)
	if n < 1 {
		return nil
	}
	return &n
}
