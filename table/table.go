// Package table holds small column-major numeric datasets and loads
// them from CSV or XLSX files. Fits resolve model arguments and target
// columns by name, so a table's header must match the model's declared
// names.
package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrColumn reports a column name with no match in the table.
	ErrColumn = errors.New("table: unknown column")

	// ErrMalformed reports structurally invalid input data.
	ErrMalformed = errors.New("table: malformed data")
)

// Table is an immutable set of equally long named float64 columns.
type Table struct {
	names []string
	cols  [][]float64
	index map[string]int
}

// New builds a table from parallel name and column slices. Names must
// be unique and non-empty, columns equally long.
func New(names []string, cols [][]float64) (*Table, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrMalformed)
	}
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrMalformed, len(names), len(cols))
	}
	t := &Table{
		names: append([]string(nil), names...),
		cols:  cols,
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty column name at position %d", ErrMalformed, i)
		}
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformed, name)
		}
		t.index[name] = i
		if len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf("%w: column %q has %d rows, %q has %d", ErrMalformed, name, len(cols[i]), names[0], len(cols[0]))
		}
	}
	return t, nil
}

// FromColumns builds a table from a name-to-column map. Columns are
// ordered alphabetically for determinism.
func FromColumns(cols map[string][]float64) (*Table, error) {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([][]float64, len(names))
	for i, name := range names {
		ordered[i] = cols[name]
	}
	return New(names, ordered)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0])
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column's backing slice. Callers must treat
// it as read-only.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have: %s)", ErrColumn, name, strings.Join(t.names, ", "))
	}
	return t.cols[i], nil
}
