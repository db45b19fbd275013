package types

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Row is one record of the table. Key = column name, value = cell text.
// A column absent from the map is a missing (null) cell.
type Row map[string]string

// Table is an immutable snapshot of the scraped dataset: an ordered list of
// rows sharing one ordered set of column names. A Table must not be modified
// after it has been published; replace it wholesale instead.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// NewTable builds a Table from the given columns and rows. Both slices are
// owned by the Table afterwards; callers must not modify them.
func NewTable(columns []string, rows []Row) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	if rows == nil {
		rows = []Row{}
	}
	return &Table{columns: columns, index: index, rows: rows}
}

// Columns returns a copy of the column names in table order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Rows returns the rows in table order. The slice is shared with the
// snapshot and must be treated as read-only.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Record pairs a row with the column order used to serialize it, so JSON
// output keeps the table's column order instead of map key order.
type Record struct {
	Columns []string
	Row     Row
}

// Records wraps rows for ordered serialization against this table's columns.
func (t *Table) Records(rows []Row) []Record {
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = Record{Columns: t.columns, Row: r}
	}
	return out
}

// Values returns the row's cells in column order. Missing cells are "".
func (r Record) Values() []string {
	vals := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		vals[i] = r.Row[c]
	}
	return vals
}

// MarshalJSON writes the row as a JSON object in column order. Missing cells
// are written as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, ok := r.Row[c]
		if !ok {
			buf.WriteString("null")
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
