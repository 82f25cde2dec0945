package models

// CellKind tells how a spreadsheet cell was stored in the source.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	// CellTime is a numeric cell rendered with a time or date-time format.
	CellTime
)

// Cell is one raw spreadsheet value.
// Text is the formatted value as shown in the sheet; Number carries the raw
// numeric value for CellNumber and CellTime cells (Excel serial days for time).
type Cell struct {
	Kind   CellKind `json:"kind"`
	Text   string   `json:"text"`
	Number float64  `json:"number,omitempty"`
}

// TextCell builds a text cell, or an empty one for blank input.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: s}
}

// RawRow maps a column name to its cell. One row is one day x time slot for every class.
type RawRow map[string]Cell

// RawTable is a rectangular sheet with named columns, in wide format.
type RawTable struct {
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"rows"`
}

// HasColumn reports whether the table carries a column with this exact name.
func (t *RawTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Get returns the cell for column, or an empty cell when the column is absent.
func (r RawRow) Get(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return Cell{Kind: CellEmpty}
}
