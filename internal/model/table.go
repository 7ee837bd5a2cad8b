package model

import (
	"encoding/json"
	"fmt"
)

// DateColumn is always the first column of a Table.
const DateColumn = "Date"

// Row is one sampled date plus one cell per asset column.
// It is encoded as a flat JSON array: [date, cell, cell, ...].
type Row struct {
	Date  Day
	Cells []Price
}

func (r Row) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(r.Cells)+1)
	out = append(out, string(r.Date))
	for _, c := range r.Cells {
		out = append(out, c)
	}
	return json.Marshal(out)
}

func (r *Row) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("row: missing date cell")
	}
	var date string
	if err := json.Unmarshal(raw[0], &date); err != nil {
		return fmt.Errorf("row: date cell: %w", err)
	}
	cells := make([]Price, len(raw)-1)
	for i, c := range raw[1:] {
		if err := json.Unmarshal(c, &cells[i]); err != nil {
			return fmt.Errorf("row: cell %d: %w", i+1, err)
		}
	}
	r.Date = Day(date)
	r.Cells = cells
	return nil
}

// Table is the columnar shape shared by every timeframe output.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// TableSet maps a timeframe label to its table.
type TableSet map[string]Table
