// Package dataset holds typed tabular machine data and the holder that owns
// the currently loaded dataset.
package dataset

import (
	"fmt"
)

// DefaultLabelColumn is the column holding the failure outcome.
const DefaultLabelColumn = "Failure"

// Value is one cell. Text is always the raw cell; Num is set for numeric columns.
type Value struct {
	Text string
	Num  float64
}

// Dataset is an immutable table of rows with a typed schema.
type Dataset struct {
	schema Schema
	rows   [][]Value
}

// New builds a dataset from a schema and rows. Every row must have one value
// per column.
func New(schema Schema, rows [][]Value) (*Dataset, error) {
	for i, row := range rows {
		if len(row) != len(schema) {
			return nil, fmt.Errorf("row %d has %d values, schema has %d columns", i, len(row), len(schema))
		}
	}
	return &Dataset{schema: schema, rows: rows}, nil
}

// Schema returns a copy of the schema.
func (d *Dataset) Schema() Schema {
	out := make(Schema, len(d.schema))
	copy(out, d.schema)
	return out
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	return len(d.schema)
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.schema.Has(name)
}

// Cell returns the value at row i, column j.
func (d *Dataset) Cell(i, j int) Value {
	return d.rows[i][j]
}

// Column returns the raw text of the named column.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := d.schema.Index(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[idx].Text
	}
	return out, true
}

// Without returns a copy of the dataset without the named column. If the
// column does not exist the dataset itself is returned.
func (d *Dataset) Without(name string) *Dataset {
	idx := d.schema.Index(name)
	if idx < 0 {
		return d
	}

	schema := make(Schema, 0, len(d.schema)-1)
	schema = append(schema, d.schema[:idx]...)
	schema = append(schema, d.schema[idx+1:]...)

	rows := make([][]Value, len(d.rows))
	for i, row := range d.rows {
		out := make([]Value, 0, len(row)-1)
		out = append(out, row[:idx]...)
		out = append(out, row[idx+1:]...)
		rows[i] = out
	}

	return &Dataset{schema: schema, rows: rows}
}
