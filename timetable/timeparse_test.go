package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedule-server/models"
	"schedule-server/models/lesson"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name   string
		cell   models.Cell
		want   lesson.ClockTime
		wantOK bool
	}{
		{"hh:mm", models.TextCell("09:05"), lesson.ClockTime{Hour: 9, Minute: 5}, true},
		{"h:mm", models.TextCell("8:30"), lesson.ClockTime{Hour: 8, Minute: 30}, true},
		{"hh:mm:ss", models.TextCell(" 13:45:00 "), lesson.ClockTime{Hour: 13, Minute: 45}, true},
		{"blank", models.TextCell(""), lesson.ClockTime{}, false},
		{"words", models.TextCell("after lunch"), lesson.ClockTime{}, false},
		{"out of range", models.TextCell("25:00"), lesson.ClockTime{}, false},
		{"plain number is not a time", models.Cell{Kind: models.CellNumber, Text: "9", Number: 9}, lesson.ClockTime{}, false},
		{"time fraction", models.Cell{Kind: models.CellTime, Number: 0.5}, lesson.ClockTime{Hour: 12}, true},
		{"date time serial", models.Cell{Kind: models.CellTime, Number: 45000.3541666667}, lesson.ClockTime{Hour: 8, Minute: 30}, true},
		{"rounds to nearest minute", models.Cell{Kind: models.CellTime, Number: 0.999999}, lesson.ClockTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClockTime(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSlotNumber(t *testing.T) {
	assert.Equal(t, 3, *ParseSlotNumber(models.TextCell("3")))
	assert.Equal(t, 2, *ParseSlotNumber(models.TextCell("2.0")))
	assert.Equal(t, 4, *ParseSlotNumber(models.Cell{Kind: models.CellNumber, Number: 4.7}))
	assert.Nil(t, ParseSlotNumber(models.TextCell("")))
	assert.Nil(t, ParseSlotNumber(models.TextCell("first")))
	assert.Nil(t, ParseSlotNumber(models.TextCell("NaN")))
	assert.Nil(t, ParseSlotNumber(models.TextCell("0")))
	assert.Nil(t, ParseSlotNumber(models.TextCell("-2")))
	assert.Nil(t, ParseSlotNumber(models.Cell{Kind: models.CellNumber, Number: 0.5}))
}
