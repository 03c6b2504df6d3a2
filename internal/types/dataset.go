package types

import "fmt"

// Row maps column names to cell values.
type Row map[string]Value

// Value returns the cell for a column. Missing columns read as null.
func (r Row) Value(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return NullValue()
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an ordered sequence of rows sharing one column set.
// Operations never mutate a Dataset; they return new ones.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset creates an empty dataset with the given column order.
func NewDataset(columns []string) *Dataset {
	return &Dataset{
		Columns: append([]string(nil), columns...),
		Rows:    make([]Row, 0),
	}
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}

// HasColumn reports whether the dataset has a column with the given name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Select projects the dataset onto the given columns, in the given order.
// Returns an error if any requested column is absent.
func (d *Dataset) Select(columns []string) (*Dataset, error) {
	for _, c := range columns {
		if !d.HasColumn(c) {
			return nil, fmt.Errorf("column %q not found in dataset", c)
		}
	}

	out := NewDataset(columns)
	for _, row := range d.Rows {
		newRow := make(Row, len(columns))
		for _, c := range columns {
			newRow[c] = row.Value(c)
		}
		out.Rows = append(out.Rows, newRow)
	}
	return out, nil
}

// Rename returns a dataset with columns renamed per the mapping
// (old name -> new name). Columns not in the mapping keep their names.
func (d *Dataset) Rename(mapping map[string]string) *Dataset {
	renamed := func(name string) string {
		if to, ok := mapping[name]; ok && to != "" {
			return to
		}
		return name
	}

	columns := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		columns[i] = renamed(c)
	}

	out := NewDataset(columns)
	for _, row := range d.Rows {
		newRow := make(Row, len(row))
		for name, v := range row {
			newRow[renamed(name)] = v
		}
		out.Rows = append(out.Rows, newRow)
	}
	return out
}
