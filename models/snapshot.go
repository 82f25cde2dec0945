package models

import (
	"time"

	"schedule-server/models/conflict"
	"schedule-server/models/lesson"
)

// Snapshot is the full derived state of one refresh cycle.
// It is built once and replaced as a whole; nothing mutates it after publication.
type Snapshot struct {
	ID                  string               `json:"id"`
	BuiltAt             time.Time            `json:"built_at"`
	Source              string               `json:"source"`
	FromCache           bool                 `json:"from_cache"`
	Lessons             []lesson.Entry       `json:"lessons"`
	LessonDiagnostics   lesson.Diagnostics   `json:"lesson_diagnostics"`
	Conflicts           []conflict.Record    `json:"conflicts"`
	ConflictDiagnostics conflict.Diagnostics `json:"conflict_diagnostics"`
}

// SnapshotInfo is the metadata part of a Snapshot.
type SnapshotInfo struct {
	ID            string    `json:"id"`
	BuiltAt       time.Time `json:"built_at"`
	Source        string    `json:"source"`
	FromCache     bool      `json:"from_cache"`
	LessonCount   int       `json:"lesson_count"`
	ConflictCount int       `json:"conflict_count"`
}

// Info summarizes the snapshot without its tables.
func (s *Snapshot) Info() SnapshotInfo {
	return SnapshotInfo{
		ID:            s.ID,
		BuiltAt:       s.BuiltAt,
		Source:        s.Source,
		FromCache:     s.FromCache,
		LessonCount:   len(s.Lessons),
		ConflictCount: len(s.Conflicts),
	}
}
