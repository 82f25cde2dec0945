package sheets

import (
	"context"
	"time"
)

// Workbook is one downloaded copy of the schedule spreadsheet.
type Workbook struct {
	Name      string    `json:"name"`
	Data      []byte    `json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ScheduleSource yields the raw schedule workbook.
type ScheduleSource interface {
	FetchWorkbook(ctx context.Context) (*Workbook, error)
	Describe() string
}
