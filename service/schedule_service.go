package services

import (
	"errors"
	"sort"
	"strings"

	"schedule-server/conflicts"
	"schedule-server/models"
	"schedule-server/models/conflict"
	"schedule-server/models/lesson"
	"schedule-server/timetable"
)

// ErrNoSnapshot is returned until the first refresh has succeeded.
var ErrNoSnapshot = errors.New("schedule is not loaded yet")

// ScheduleService answers read queries against published snapshots.
type ScheduleService struct {
	store  *SnapshotStore
	layout timetable.Layout
}

// NewScheduleService constructs a new ScheduleService.
func NewScheduleService(store *SnapshotStore, layout timetable.Layout) *ScheduleService {
	return &ScheduleService{
		store:  store,
		layout: layout,
	}
}

// Snapshot returns the current snapshot. Callers should take it once per request
// and pass it to the filter methods.
func (ss *ScheduleService) Snapshot() (*models.Snapshot, error) {
	snap := ss.store.Current()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// FilterLessons keeps the lessons matching every non-empty filter exactly.
// The result never aliases the snapshot.
func (ss *ScheduleService) FilterLessons(snap *models.Snapshot, p models.LessonFilterParams) []lesson.Entry {
	if p.IsEmpty() {
		return append([]lesson.Entry{}, snap.Lessons...)
	}
	out := []lesson.Entry{}
	for _, e := range snap.Lessons {
		if matchLesson(e, p) {
			out = append(out, e)
		}
	}
	return out
}

func matchLesson(e lesson.Entry, p models.LessonFilterParams) bool {
	switch {
	case p.Day != "" && e.Day != p.Day:
		return false
	case p.Class != "" && e.ClassName != p.Class:
		return false
	case p.Teacher != "" && e.Teacher != p.Teacher:
		return false
	case p.Person != "" && e.Teacher != p.Person && e.Tutor != p.Person:
		return false
	case p.Subject != "" && e.Subject != p.Subject:
		return false
	case p.Room != "" && e.Room != p.Room:
		return false
	}
	return true
}

// LessonFilterOptions collects the distinct non-empty values per filter.
// Days follow the weekday order, the rest are sorted.
func (ss *ScheduleService) LessonFilterOptions(snap *models.Snapshot) models.LessonFilterOptions {
	days, classes, teachers := newValueSet(), newValueSet(), newValueSet()
	persons, subjects, rooms := newValueSet(), newValueSet(), newValueSet()
	for _, e := range snap.Lessons {
		days.add(e.Day)
		classes.add(e.ClassName)
		teachers.add(e.Teacher)
		persons.add(e.Teacher)
		persons.add(e.Tutor)
		subjects.add(e.Subject)
		rooms.add(e.Room)
	}

	dayList := days.list()
	sort.SliceStable(dayList, func(i, j int) bool {
		return ss.layout.DayOrder(dayList[i]) < ss.layout.DayOrder(dayList[j])
	})

	return models.LessonFilterOptions{
		Days:     dayList,
		Classes:  classes.list(),
		Teachers: teachers.list(),
		Persons:  persons.list(),
		Subjects: subjects.list(),
		Rooms:    rooms.list(),
	}
}

// FilterConflicts keeps conflicts of the given type and day whose resource
// label contains the query, ignoring case and extra whitespace.
func (ss *ScheduleService) FilterConflicts(snap *models.Snapshot, p models.ConflictFilterParams) []conflict.Record {
	query := conflicts.NormalizeResourceKey(p.Query)
	out := []conflict.Record{}
	for _, r := range snap.Conflicts {
		if p.Type != "" && string(r.ResourceType) != p.Type {
			continue
		}
		if p.Day != "" && r.Day != p.Day {
			continue
		}
		if query != "" && !strings.Contains(r.ResourceKey, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type valueSet map[string]struct{}

func newValueSet() valueSet {
	return valueSet{}
}

func (s valueSet) add(v string) {
	if v = strings.TrimSpace(v); v != "" {
		s[v] = struct{}{}
	}
}

// list returns the values sorted.
func (s valueSet) list() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
