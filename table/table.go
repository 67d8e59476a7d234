// Package table provides the ordered-column table abstraction that column
// operators transform. A Table is an ordered set of named columns over a
// fixed number of rows; values are loosely typed and no schema is enforced.
//
// Tables are immutable: every operation that changes a table returns a new
// value, leaving the receiver untouched. Row count and row order are stable
// across all operations, which is what lets operators correlate remote
// evaluation results with input rows purely by position.
package table

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by table operations.
var (
	// ErrColumnNotFound indicates a referenced column does not exist.
	ErrColumnNotFound = errors.New("column not found")

	// ErrLengthMismatch indicates a column's value count does not match the
	// table's row count.
	ErrLengthMismatch = errors.New("column length does not match row count")
)

// Column is a named, ordered sequence of values. Values[i] belongs to row i.
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered set of named columns over a fixed number of rows.
// The zero value is an empty table with no rows and no columns.
type Table struct {
	names []string
	cols  map[string][]any
	rows  int
}

// FromColumns builds a table from columns in the given order.
// All columns must have the same number of values.
func FromColumns(cols ...Column) (Table, error) {
	t := Table{cols: make(map[string][]any, len(cols))}
	for i, c := range cols {
		if i == 0 {
			t.rows = len(c.Values)
		} else if len(c.Values) != t.rows {
			return Table{}, fmt.Errorf("column %q has %d values, want %d: %w",
				c.Name, len(c.Values), t.rows, ErrLengthMismatch)
		}
		if _, ok := t.cols[c.Name]; !ok {
			t.names = append(t.names, c.Name)
		}
		t.cols[c.Name] = cloneValues(c.Values)
	}
	return t, nil
}

// FromRecords builds a table from one record per row. Column order is the
// order in which names are first seen, with names within a single record
// visited alphabetically so construction is deterministic. Rows missing a
// column get a nil value.
func FromRecords(records []map[string]any) Table {
	t := Table{cols: make(map[string][]any), rows: len(records)}
	for _, rec := range records {
		for _, name := range sortedKeys(rec) {
			if _, ok := t.cols[name]; !ok {
				t.names = append(t.names, name)
				t.cols[name] = make([]any, len(records))
			}
		}
	}
	for i, rec := range records {
		for name, v := range rec {
			t.cols[name][i] = v
		}
	}
	return t
}

// Len returns the number of rows.
func (t Table) Len() int { return t.rows }

// ColumnNames returns the column names in table order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// HasColumn reports whether a column with the given name exists.
func (t Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns a copy of the named column's values in row order.
func (t Table) Column(name string) ([]any, error) {
	values, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return cloneValues(values), nil
}

// Records returns one map per row containing every column, in row order.
func (t Table) Records() []map[string]any {
	records := make([]map[string]any, t.rows)
	for i := range records {
		rec := make(map[string]any, len(t.names))
		for _, name := range t.names {
			rec[name] = t.cols[name][i]
		}
		records[i] = rec
	}
	return records
}

// Project returns one flat record per row containing only the requested
// columns, renamed on the way out: fields maps each output field name to the
// source column it is read from. The table itself is never renamed.
func (t Table) Project(fields map[string]string) ([]map[string]any, error) {
	for field, source := range fields {
		if !t.HasColumn(source) {
			return nil, fmt.Errorf("field %q: %w: %q", field, ErrColumnNotFound, source)
		}
	}

	records := make([]map[string]any, t.rows)
	for i := range records {
		rec := make(map[string]any, len(fields))
		for field, source := range fields {
			rec[field] = t.cols[source][i]
		}
		records[i] = rec
	}
	return records, nil
}

// WithColumn returns a new table with the named column appended, or replaced
// if the name already exists. The receiver is unchanged. The value count
// must equal the row count, except on an empty table (no rows and no
// columns), which adopts the new column's length.
func (t Table) WithColumn(name string, values []any) (Table, error) {
	return t.WithColumns(Column{Name: name, Values: values})
}

// WithColumns returns a new table with every given column appended or
// replaced, atomically: if any column fails validation, the receiver is
// returned unchanged and no column is attached.
func (t Table) WithColumns(cols ...Column) (Table, error) {
	rows := t.rows
	for i, c := range cols {
		// Only a truly empty table adopts the new length: a column-less
		// table can still carry a row count (records with no fields).
		if t.rows == 0 && len(t.names) == 0 && i == 0 {
			rows = len(c.Values)
			continue
		}
		if len(c.Values) != rows {
			return Table{}, fmt.Errorf("column %q has %d values, want %d: %w",
				c.Name, len(c.Values), rows, ErrLengthMismatch)
		}
	}

	out := Table{
		names: make([]string, len(t.names), len(t.names)+len(cols)),
		cols:  make(map[string][]any, len(t.names)+len(cols)),
		rows:  rows,
	}
	copy(out.names, t.names)
	for name, values := range t.cols {
		out.cols[name] = values
	}
	for _, c := range cols {
		if _, ok := out.cols[c.Name]; !ok {
			out.names = append(out.names, c.Name)
		}
		out.cols[c.Name] = cloneValues(c.Values)
	}
	return out, nil
}

// cloneValues copies a value slice so tables never alias caller-owned or
// sibling-table storage through mutation.
func cloneValues(values []any) []any {
	out := make([]any, len(values))
	copy(out, values)
	return out
}

// sortedKeys returns the record's keys in alphabetical order.
func sortedKeys(rec map[string]any) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
