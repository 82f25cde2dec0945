package util

import (
	"bytes"
	"strings"
	"testing"

	"schedule-server/models"
	"schedule-server/models/conflict"
	"schedule-server/models/lesson"
)

func chartSnapshot() *models.Snapshot {
	return &models.Snapshot{
		ID: "snap-1",
		Lessons: []lesson.Entry{
			{Day: "Monday"}, {Day: "Monday"}, {Day: "Friday"}, {Day: "SAT"}, {Day: ""},
		},
		Conflicts: []conflict.Record{
			{ResourceType: conflict.ResourcePerson, Day: "Monday"},
			{ResourceType: conflict.ResourcePerson, Day: "Monday"},
			{ResourceType: conflict.ResourceRoom, Day: "Tuesday"},
		},
	}
}

func TestCountPerDay(t *testing.T) {
	tally := CountPerDay(chartSnapshot(), []string{"Monday", "Tuesday", "Friday"})

	wantDays := []string{"Monday", "Tuesday", "Friday", "SAT"}
	if strings.Join(tally.Days, ",") != strings.Join(wantDays, ",") {
		t.Fatalf("Expected days %v, got %v", wantDays, tally.Days)
	}

	tests := []struct {
		series string
		want   []int
	}{
		{"Teacher/tutor", []int{2, 0, 0, 0}},
		{"Room", []int{0, 1, 0, 0}},
		{"Lessons", []int{2, 0, 1, 1}},
	}
	for _, tt := range tests {
		got := tally.Counts[tt.series]
		if len(got) != len(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.series, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: expected %v, got %v", tt.series, tt.want, got)
				break
			}
		}
	}
}

func TestRenderScheduleCharts(t *testing.T) {
	var buf bytes.Buffer

	if err := RenderScheduleCharts(&buf, chartSnapshot(), []string{"Monday", "Tuesday"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Conflicts per day", "Lessons per day", "Teacher/tutor", "Monday"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected rendered page to contain %q", want)
		}
	}
}
