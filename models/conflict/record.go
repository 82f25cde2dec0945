package conflict

import "schedule-server/models/lesson"

// ResourceType is the kind of resource that can be double-booked.
type ResourceType string

const (
	ResourcePerson ResourceType = "person"
	ResourceRoom   ResourceType = "room"
)

// Label is the display name of the resource type.
func (t ResourceType) Label() string {
	switch t {
	case ResourcePerson:
		return "Teacher/tutor"
	case ResourceRoom:
		return "Room"
	default:
		return string(t)
	}
}

// Rank orders person conflicts before room conflicts.
func (t ResourceType) Rank() int {
	if t == ResourcePerson {
		return 0
	}
	return 1
}

// Record is one overlapping pair of lessons sharing a resource on the same day.
type Record struct {
	ResourceType   ResourceType `json:"resource_type"`
	ResourceLabel  string       `json:"resource_label"`
	ResourceKey    string       `json:"resource_key"`
	Day            string       `json:"day"`
	OverlapMinutes int          `json:"overlap_minutes"`
	First          lesson.Entry `json:"first"`
	Second         lesson.Entry `json:"second"`
	FirstSummary   string       `json:"first_summary"`
	SecondSummary  string       `json:"second_summary"`
}

// Diagnostics counts what the detector did with its input.
type Diagnostics struct {
	EventsPerson    int `json:"events_person"`
	EventsRoom      int `json:"events_room"`
	SkippedNoTime   int `json:"skipped_no_time"`
	SkippedNoDay    int `json:"skipped_no_day"`
	SkippedNoPerson int `json:"skipped_no_person"`
	SkippedNoRoom   int `json:"skipped_no_room"`
	ConflictsFound  int `json:"conflicts_found"`
}
