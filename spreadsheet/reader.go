package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"schedule-server/models"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrNoHeader      = errors.New("sheet has no header row")
)

// Format is the container format of a schedule workbook.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFromName guesses the format from a file name, defaulting to xlsx.
func FormatFromName(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// Read parses the workbook bytes into a raw table. The first row is the header.
// An empty sheet name selects the workbook's active sheet; it is ignored for csv.
func Read(data []byte, format Format, sheet string) (*models.RawTable, error) {
	switch format {
	case FormatCSV:
		return readCSV(data)
	case FormatXLSX, "":
		return readXLSX(data, sheet)
	default:
		return nil, fmt.Errorf("unsupported workbook format: %s", format)
	}
}

func readXLSX(data []byte, sheet string) (*models.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheet, strings.Join(f.GetSheetList(), ", "))
	}

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read raw values of sheet %q: %w", sheet, err)
	}

	if len(formatted) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoHeader, sheet)
	}
	table, err := buildTable(formatted[0], len(formatted)-1, func(r, c int) models.Cell {
		return classify(at(formatted, r, c), at(raw, r, c))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, sheet)
	}

	log.Printf("[SpreadsheetReader] Sheet %q parsed (%d columns, %d rows)", sheet, len(table.Columns), len(table.Rows))
	return table, nil
}

func readCSV(data []byte) (*models.RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	table, err := buildTable(rows[0], len(rows)-1, func(r, c int) models.Cell {
		return models.TextCell(at(rows, r, c))
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SpreadsheetReader] CSV parsed (%d columns, %d rows)", len(table.Columns), len(table.Rows))
	return table, nil
}

// buildTable maps data rows 1..n onto normalized header names. Blank headers
// are dropped and a repeated header keeps its first column.
func buildTable(header []string, n int, cell func(r, c int) models.Cell) (*models.RawTable, error) {
	table := &models.RawTable{Columns: []string{}, Rows: []models.RawRow{}}
	index := make(map[int]string)
	seen := make(map[string]bool)
	for i, h := range header {
		name := NormalizeHeader(h)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		index[i] = name
		table.Columns = append(table.Columns, name)
	}
	if len(table.Columns) == 0 {
		return nil, ErrNoHeader
	}

	for r := 1; r <= n; r++ {
		row := make(models.RawRow, len(index))
		for c, name := range index {
			row[name] = cell(r, c)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// NormalizeHeader turns non-breaking spaces into spaces, collapses runs of
// whitespace and trims.
func NormalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\u00a0", " ")
	return strings.Join(strings.Fields(h), " ")
}

// classify decides the cell kind from its formatted and raw renditions.
// A numeric cell shown with a clock format is a time of day.
func classify(formatted, raw string) models.Cell {
	if strings.TrimSpace(raw) == "" && strings.TrimSpace(formatted) == "" {
		return models.Cell{Kind: models.CellEmpty}
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		kind := models.CellNumber
		if formatted != raw && strings.Contains(formatted, ":") {
			kind = models.CellTime
		}
		return models.Cell{Kind: kind, Text: formatted, Number: v}
	}
	return models.TextCell(formatted)
}

func at(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}
