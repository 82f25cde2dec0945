package services

import (
	"sync/atomic"

	"schedule-server/models"
)

// SnapshotStore publishes the current schedule snapshot to concurrent readers.
// Readers take the pointer once and keep using it; a refresh swaps in a new one.
type SnapshotStore struct {
	current atomic.Pointer[models.Snapshot]
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Current returns the latest snapshot, or nil before the first refresh.
func (s *SnapshotStore) Current() *models.Snapshot {
	return s.current.Load()
}

// Swap publishes next and returns the snapshot it replaced.
func (s *SnapshotStore) Swap(next *models.Snapshot) *models.Snapshot {
	return s.current.Swap(next)
}
