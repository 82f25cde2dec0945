package models

import (
	"net/url"
	"strings"
)

// LessonFilterParams mirrors the lesson table filters. Use zero-values to omit.
type LessonFilterParams struct {
	Day     string // exact weekday name
	Class   string // exact class name
	Teacher string // exact teacher
	Person  string // teacher OR tutor
	Subject string
	Room    string
}

// ConflictFilterParams mirrors the conflict report filters. Use zero-values to omit.
type ConflictFilterParams struct {
	Type  string // "person" | "room"
	Day   string
	Query string // case-insensitive substring of the resource label
}

// LessonFilterParamsFromValues reads lesson filters from query args.
func LessonFilterParamsFromValues(q url.Values) LessonFilterParams {
	return LessonFilterParams{
		Day:     arg(q, "day"),
		Class:   arg(q, "class"),
		Teacher: arg(q, "teacher"),
		Person:  arg(q, "person"),
		Subject: arg(q, "subject"),
		Room:    arg(q, "room"),
	}
}

// ConflictFilterParamsFromValues reads conflict filters from query args.
func ConflictFilterParamsFromValues(q url.Values) ConflictFilterParams {
	return ConflictFilterParams{
		Type:  strings.ToLower(arg(q, "type")),
		Day:   arg(q, "day"),
		Query: arg(q, "q"),
	}
}

// IsEmpty reports whether no lesson filter is set.
func (p LessonFilterParams) IsEmpty() bool {
	return p == LessonFilterParams{}
}

func arg(q url.Values, name string) string {
	return strings.TrimSpace(q.Get(name))
}

// LessonFilterOptions lists the distinct values each lesson filter can take.
type LessonFilterOptions struct {
	Days     []string `json:"days"`
	Classes  []string `json:"classes"`
	Teachers []string `json:"teachers"`
	Persons  []string `json:"persons"`
	Subjects []string `json:"subjects"`
	Rooms    []string `json:"rooms"`
}
