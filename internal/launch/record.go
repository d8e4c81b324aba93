// Package launch loads SpaceX launch records into an immutable in-memory table.
package launch

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Required column names in the source table.
const (
	ColumnLaunchSite  = "Launch Site"
	ColumnPayloadMass = "Payload Mass (kg)"
	ColumnClass       = "class"
)

// Outcome is the binary mission outcome stored in the "class" column.
type Outcome int

// Outcome values.
const (
	Failure Outcome = 0
	Success Outcome = 1
)

// IsSuccess reports whether the outcome is a success.
func (o Outcome) IsSuccess() bool {
	return o == Success
}

// Record is one row of the launch table.
type Record struct {
	LaunchSite    string
	PayloadMassKg float64
	Class         Outcome

	// Raw holds every cell of the row, aligned with Table.Columns.
	Raw []string
}

// Table is an ordered, read-only set of launch records.
// Nothing mutates a Table after construction; filters return new tables.
type Table struct {
	columns []string
	records []Record
}

// NewTable builds a table from a header and raw string rows.
// Line numbers in errors are 1-based and count the header as line 1.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	siteIdx, err := columnIndex(columns, ColumnLaunchSite)
	if err != nil {
		return nil, err
	}
	payloadIdx, err := columnIndex(columns, ColumnPayloadMass)
	if err != nil {
		return nil, err
	}
	classIdx, err := columnIndex(columns, ColumnClass)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		if len(row) != len(columns) {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected %d fields, got %d", len(columns), len(row))}
		}

		payload, err := parsePayload(row[payloadIdx])
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColumnPayloadMass, Err: err}
		}

		class, err := parseOutcome(row[classIdx])
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColumnClass, Err: err}
		}

		records = append(records, Record{
			LaunchSite:    strings.TrimSpace(row[siteIdx]),
			PayloadMassKg: payload,
			Class:         class,
			Raw:           slices.Clone(row),
		})
	}

	return &Table{columns: slices.Clone(columns), records: records}, nil
}

// parsePayload reads a payload mass. NaN and infinities are rejected so
// they never reach the dataset bounds or the range filter.
func parsePayload(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("payload mass %q is not a finite number", cell)
	}
	return v, nil
}

// NewTableFromRecords builds a table directly from typed records.
// Raw cells are synthesized from the typed fields.
func NewTableFromRecords(records ...Record) *Table {
	columns := []string{ColumnLaunchSite, ColumnClass, ColumnPayloadMass}
	out := make([]Record, len(records))
	for i, r := range records {
		r.Raw = []string{
			r.LaunchSite,
			strconv.Itoa(int(r.Class)),
			strconv.FormatFloat(r.PayloadMassKg, 'f', -1, 64),
		}
		out[i] = r
	}
	return &Table{columns: columns, records: out}
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Each calls fn for every record in table order.
func (t *Table) Each(fn func(Record)) {
	for _, r := range t.records {
		fn(r)
	}
}

// Filter returns a new table holding the records for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Table{columns: t.columns, records: out}
}

func columnIndex(columns []string, name string) (int, error) {
	for i, c := range columns {
		if strings.TrimSpace(c) == name {
			return i, nil
		}
	}
	return -1, &MissingColumnError{Column: name, Available: slices.Clone(columns)}
}

func parseOutcome(s string) (Outcome, error) {
	s = strings.TrimSpace(s)
	// DuckDB and pandas exports may write the flag as a float.
	switch s {
	case "0", "0.0":
		return Failure, nil
	case "1", "1.0":
		return Success, nil
	}
	return Failure, fmt.Errorf("invalid outcome %q: want 0 or 1", s)
}
