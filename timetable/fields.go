package timetable

import (
	"sort"
	"strings"

	"schedule-server/models"
)

// AllGroups is the tag of a value that applies to every subgroup.
const AllGroups = "All"

// GroupedField is one parsed cell: subgroup tag -> value.
// A cell without any "TAG: value" line parses to {"All": text}.
type GroupedField map[string]string

// ParseGroupedField parses the text of a subject/teacher/tutor/room cell.
//
//	"History"             -> {"All": "History"}
//	"A: Algebra\nB: Geometry" -> {"A": "Algebra", "B": "Geometry"}
//	"B:"                  -> {"B": ""}
//
// In a tagged cell, stray untagged lines are space-joined into "All".
func ParseGroupedField(text string) GroupedField {
	s := strings.TrimSpace(text)
	if s == "" {
		return GroupedField{}
	}

	lines := splitLines(s)
	tagged := false
	for _, ln := range lines {
		if _, _, ok := splitTagged(ln); ok {
			tagged = true
			break
		}
	}
	if !tagged {
		return GroupedField{AllGroups: s}
	}

	out := GroupedField{}
	for _, ln := range lines {
		if tag, val, ok := splitTagged(ln); ok {
			out[tag] = val
			continue
		}
		out[AllGroups] = strings.TrimSpace(out[AllGroups] + " " + ln)
	}
	return out
}

// ParseGroupedCell parses a raw cell through ParseGroupedField.
func ParseGroupedCell(c models.Cell) GroupedField {
	return ParseGroupedField(CellText(c))
}

// CollectGroups returns the sorted union of subgroup tags across fields,
// or ["All"] when none of them is tagged.
func CollectGroups(fields ...GroupedField) []string {
	set := make(map[string]struct{})
	for _, f := range fields {
		for k := range f {
			if k != AllGroups {
				set[k] = struct{}{}
			}
		}
	}
	if len(set) == 0 {
		return []string{AllGroups}
	}

	groups := make([]string, 0, len(set))
	for g := range set {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// ValueFor returns the value for group, falling back to the "All" value, then "".
func (f GroupedField) ValueFor(group string) string {
	if v, ok := f[group]; ok {
		return v
	}
	return f[AllGroups]
}

// CellText is the trimmed display text of a cell, "" when empty.
func CellText(c models.Cell) string {
	if c.Kind == models.CellEmpty {
		return ""
	}
	return strings.TrimSpace(c.Text)
}

// splitTagged splits "tag: value" at the first colon. The tag must be non-empty.
func splitTagged(line string) (tag, value string, ok bool) {
	before, after, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	tag = strings.TrimSpace(before)
	if tag == "" {
		return "", "", false
	}
	return tag, strings.TrimSpace(after), true
}

// splitLines splits a cell on line breaks (Alt+Enter in the sheet), dropping blank lines.
func splitLines(cell string) []string {
	cell = strings.ReplaceAll(cell, "\r\n", "\n")
	cell = strings.ReplaceAll(cell, "\r", "\n")

	var out []string
	for _, ln := range strings.Split(cell, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
