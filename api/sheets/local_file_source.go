package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalFileSource reads the schedule from disk, for development and the CLI.
type LocalFileSource struct {
	path string
}

func NewLocalFileSource(path string) *LocalFileSource {
	return &LocalFileSource{path: path}
}

// FetchWorkbook reads the whole file.
func (s *LocalFileSource) FetchWorkbook(ctx context.Context) (*Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}
	return &Workbook{
		Name:      filepath.Base(s.path),
		Data:      data,
		FetchedAt: time.Now(),
	}, nil
}

func (s *LocalFileSource) Describe() string {
	return "file:" + s.path
}
