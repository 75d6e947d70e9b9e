package transform

import (
	"fmt"
	"slices"

	"fashionetl/internal/model"
)

// Table is an ordered set of rows sharing one column schema. Operations never
// modify the receiver; they return a new Table.
type Table struct {
	columns []string
	rows    [][]Value
}

// NewTable copies columns and rows into a Table. Every row must have one
// value per column.
func NewTable(columns []string, rows [][]Value) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true
	}
	t := &Table{columns: slices.Clone(columns), rows: make([][]Value, len(rows))}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(columns))
		}
		t.rows[i] = slices.Clone(r)
	}
	return t, nil
}

// FromRaw builds the raw record table produced by the extractor.
func FromRaw(products []model.RawProduct) *Table {
	t := &Table{
		columns: []string{
			model.ColTitle, model.ColPrice, model.ColRating, model.ColColors,
			model.ColSize, model.ColGender, model.ColTimestamp,
		},
		rows: make([][]Value, 0, len(products)),
	}
	for _, p := range products {
		t.rows = append(t.rows, []Value{
			Text(p.Title), Text(p.Price), Text(p.Rating), Text(p.Colors),
			Text(p.Size), Text(p.Gender), Text(p.Timestamp),
		})
	}
	return t
}

// Len returns the number of rows. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

func (t *Table) index(name string) (int, error) {
	i := slices.Index(t.columns, name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return i, nil
}

// Value returns the cell at row i in the named column.
func (t *Table) Value(i int, column string) (Value, error) {
	c, err := t.index(column)
	if err != nil {
		return Value{}, err
	}
	if i < 0 || i >= len(t.rows) {
		return Value{}, fmt.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}
	return t.rows[i][c], nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	return slices.Clone(t.rows[i])
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]Value, error) {
	c, err := t.index(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[c]
	}
	return out, nil
}

// WithColumn replaces the named column, or appends it if absent.
func (t *Table) WithColumn(name string, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %s: %d values for %d rows", name, len(values), len(t.rows))
	}
	c := slices.Index(t.columns, name)
	out := t.clone()
	if c < 0 {
		out.columns = append(out.columns, name)
		for i := range out.rows {
			out.rows[i] = append(out.rows[i], values[i])
		}
		return out, nil
	}
	for i := range out.rows {
		out.rows[i][c] = values[i]
	}
	return out, nil
}

// InsertColumnAfter adds a new column directly after an existing one.
func (t *Table) InsertColumnAfter(after, name string, values []Value) (*Table, error) {
	if t.HasColumn(name) {
		return nil, fmt.Errorf("column %s already exists", name)
	}
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %s: %d values for %d rows", name, len(values), len(t.rows))
	}
	a, err := t.index(after)
	if err != nil {
		return nil, err
	}
	out := t.clone()
	out.columns = slices.Insert(out.columns, a+1, name)
	for i := range out.rows {
		out.rows[i] = slices.Insert(out.rows[i], a+1, values[i])
	}
	return out, nil
}

// DropColumn removes the named column.
func (t *Table) DropColumn(name string) (*Table, error) {
	c, err := t.index(name)
	if err != nil {
		return nil, err
	}
	out := t.clone()
	out.columns = slices.Delete(out.columns, c, c+1)
	for i := range out.rows {
		out.rows[i] = slices.Delete(out.rows[i], c, c+1)
	}
	return out, nil
}

// Filter keeps the rows for which keep returns true, in their original order.
func (t *Table) Filter(keep func(row []Value) bool) *Table {
	out := &Table{columns: slices.Clone(t.columns), rows: make([][]Value, 0, len(t.rows))}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, slices.Clone(r))
		}
	}
	return out
}

func (t *Table) clone() *Table {
	out := &Table{columns: slices.Clone(t.columns), rows: make([][]Value, len(t.rows))}
	for i, r := range t.rows {
		out.rows[i] = slices.Clone(r)
	}
	return out
}
