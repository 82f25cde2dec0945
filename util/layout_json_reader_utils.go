package util

import (
	"encoding/json"
	"fmt"
	"os"

	"schedule-server/timetable"
)

// ReadLayoutFromJSON loads a sheet layout from JSON on disk and validates it.
func ReadLayoutFromJSON(filePath string) (*timetable.Layout, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var layout timetable.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout %q: %w", filePath, err)
	}
	return &layout, nil
}
