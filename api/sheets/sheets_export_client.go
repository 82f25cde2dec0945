package sheets

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"schedule-server/api"
)

const userAgent = "schedule-server/1.0"

// SheetsExportClient downloads a spreadsheet through its XLSX export link.
type SheetsExportClient struct {
	*api.HTTPClient
	exportURL string
}

// NewSheetsExportClient creates a client for a full export URL.
func NewSheetsExportClient(exportURL string, timeout time.Duration) *SheetsExportClient {
	return &SheetsExportClient{
		HTTPClient: api.NewHTTPClient("", timeout),
		exportURL:  exportURL,
	}
}

// FetchWorkbook downloads the current export.
func (c *SheetsExportClient) FetchWorkbook(ctx context.Context) (*Workbook, error) {
	data, err := c.Download(ctx, c.exportURL, map[string]string{"User-Agent": userAgent})
	if err != nil {
		return nil, fmt.Errorf("failed to download schedule from %s: %w", c.Describe(), err)
	}
	return &Workbook{
		Name:      workbookName(c.exportURL),
		Data:      data,
		FetchedAt: time.Now(),
	}, nil
}

// Describe names the source without its query string.
func (c *SheetsExportClient) Describe() string {
	u, err := url.Parse(c.exportURL)
	if err != nil {
		return "url"
	}
	u.RawQuery = ""
	return u.String()
}

// workbookName picks a file name for the export; the export is always xlsx.
func workbookName(exportURL string) string {
	u, err := url.Parse(exportURL)
	if err != nil || path.Ext(u.Path) != ".xlsx" {
		return "schedule.xlsx"
	}
	return path.Base(u.Path)
}
