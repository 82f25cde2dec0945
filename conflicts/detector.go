package conflicts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"schedule-server/models/conflict"
	"schedule-server/models/lesson"
)

// event is one lesson occupying one resource.
type event struct {
	resourceType conflict.ResourceType
	key          string
	day          string
	startMin     int
	endMin       int
	lesson       lesson.Entry
}

type bucketKey struct {
	resourceType conflict.ResourceType
	day          string
	key          string
}

// Detector finds double-booked people and rooms.
// dayOrder ranks weekday names for the final ordering; unknown days sort last.
type Detector struct {
	dayOrder func(day string) int
}

// NewDetector builds a detector ordering days with dayOrder.
func NewDetector(dayOrder func(day string) int) *Detector {
	if dayOrder == nil {
		dayOrder = func(string) int { return 99 }
	}
	return &Detector{dayOrder: dayOrder}
}

var folder = cases.Fold()

// NormalizeResourceKey collapses whitespace and case-folds a person or room name,
// so "Ivanova " and "ivanova" are the same resource.
func NormalizeResourceKey(s string) string {
	return folder.String(strings.Join(strings.Fields(s), " "))
}

// Detect reports every pair of lessons that overlap in time on the same day
// while sharing a person (teacher or tutor) or a room.
func (d *Detector) Detect(entries []lesson.Entry) ([]conflict.Record, conflict.Diagnostics) {
	events, labels, diag := buildEvents(entries)

	buckets := make(map[bucketKey][]event)
	var order []bucketKey
	for _, ev := range events {
		k := bucketKey{resourceType: ev.resourceType, day: ev.day, key: ev.key}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], ev)
	}

	records := []conflict.Record{}
	for _, k := range order {
		label := labels[labelKey(k.resourceType, k.key)]
		records = append(records, sweep(k, label, buckets[k])...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ResourceType.Rank() != b.ResourceType.Rank() {
			return a.ResourceType.Rank() < b.ResourceType.Rank()
		}
		if da, db := d.dayOrder(a.Day), d.dayOrder(b.Day); da != db {
			return da < db
		}
		return a.OverlapMinutes > b.OverlapMinutes
	})

	diag.ConflictsFound = len(records)
	return records, diag
}

// sweep enumerates overlapping pairs in one resource x day bucket.
// The working set is a plain slice; buckets hold at most a day's worth of periods.
func sweep(k bucketKey, label string, evs []event) []conflict.Record {
	sorted := make([]event, len(evs))
	copy(sorted, evs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].startMin < sorted[j].startMin
	})

	var out []conflict.Record
	var open []event
	for _, cur := range sorted {
		kept := open[:0]
		for _, a := range open {
			if a.endMin > cur.startMin {
				kept = append(kept, a)
			}
		}
		open = kept

		for _, a := range open {
			overlap := min(a.endMin, cur.endMin) - max(a.startMin, cur.startMin)
			if overlap <= 0 {
				continue
			}
			out = append(out, conflict.Record{
				ResourceType:   k.resourceType,
				ResourceLabel:  label,
				ResourceKey:    k.key,
				Day:            k.day,
				OverlapMinutes: overlap,
				First:          a.lesson,
				Second:         cur.lesson,
				FirstSummary:   Summarize(a.lesson),
				SecondSummary:  Summarize(cur.lesson),
			})
		}
		open = append(open, cur)
	}
	return out
}

// buildEvents expands lessons into person and room events.
// labels keeps the first spelling seen for each resource.
func buildEvents(entries []lesson.Entry) ([]event, map[string]string, conflict.Diagnostics) {
	var diag conflict.Diagnostics
	var events []event
	labels := make(map[string]string)

	add := func(rt conflict.ResourceType, name string, day string, e lesson.Entry) {
		key := NormalizeResourceKey(name)
		if _, ok := labels[labelKey(rt, key)]; !ok {
			labels[labelKey(rt, key)] = name
		}
		events = append(events, event{
			resourceType: rt,
			key:          key,
			day:          day,
			startMin:     e.Start.Minutes(),
			endMin:       e.End.Minutes(),
			lesson:       e,
		})
	}

	for _, e := range entries {
		day := strings.TrimSpace(e.Day)
		if day == "" {
			diag.SkippedNoDay++
			continue
		}
		if !e.HasInterval() {
			diag.SkippedNoTime++
			continue
		}

		teacher := strings.TrimSpace(e.Teacher)
		tutor := strings.TrimSpace(e.Tutor)
		var people []string
		if teacher != "" {
			people = append(people, teacher)
		}
		if tutor != "" && tutor != teacher {
			people = append(people, tutor)
		}
		if len(people) == 0 {
			diag.SkippedNoPerson++
		}
		for _, p := range people {
			add(conflict.ResourcePerson, p, day, e)
			diag.EventsPerson++
		}

		room := strings.TrimSpace(e.Room)
		if room == "" {
			diag.SkippedNoRoom++
			continue
		}
		add(conflict.ResourceRoom, room, day, e)
		diag.EventsRoom++
	}
	return events, labels, diag
}

func labelKey(rt conflict.ResourceType, key string) string {
	return string(rt) + "\x00" + key
}

// Summarize renders a lesson as one compact line for conflict reports.
func Summarize(e lesson.Entry) string {
	group := ""
	if strings.TrimSpace(e.Group) != "" {
		group = " [" + e.Group + "]"
	}
	return fmt.Sprintf("%s%s: %s; %s-%s; room %s; teacher %s; tutor %s",
		e.ClassName, group, e.Subject,
		formatClock(e.Start), formatClock(e.End),
		e.Room, e.Teacher, e.Tutor,
	)
}

func formatClock(c *lesson.ClockTime) string {
	if c == nil {
		return ""
	}
	return c.String()
}
