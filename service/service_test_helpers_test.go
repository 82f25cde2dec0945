package services

import (
	"context"
	"sync"
	"time"

	"schedule-server/api/sheets"
)

const scheduleCSV = "Day,Primary Type,Primary Slot,Primary Start,Primary End," +
	"Grade 1 Subject,Grade 1 Teacher,Grade 1 Tutor,Grade 1 Room," +
	"Grade 2 Subject,Grade 2 Teacher,Grade 2 Tutor,Grade 2 Room\n" +
	"MON,lesson,1,09:00,09:45,Math,Ivanova,,101,Art,Ivanova,,101\n" +
	"MON,lesson,2,10:00,10:45,Reading,Petrov,Sidorov,102,Music,Orlov,,103\n" +
	"TUE,break,,,,,,,,,,,\n"

// fakeSource serves a fixed workbook and counts fetches.
type fakeSource struct {
	mu    sync.Mutex
	name  string
	data  []byte
	err   error
	calls int
}

func (s *fakeSource) FetchWorkbook(ctx context.Context) (*sheets.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &sheets.Workbook{Name: s.name, Data: s.data, FetchedAt: time.Now()}, nil
}

func (s *fakeSource) Describe() string {
	return "fake:" + s.name
}

func (s *fakeSource) fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// blockingSource holds FetchWorkbook until release is closed or ctx ends.
type blockingSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingSource() *blockingSource {
	return &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
}

func (s *blockingSource) FetchWorkbook(ctx context.Context) (*sheets.Workbook, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return &sheets.Workbook{Name: "schedule.csv", Data: []byte(scheduleCSV), FetchedAt: time.Now()}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *blockingSource) Describe() string {
	return "blocking"
}
