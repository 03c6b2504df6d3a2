// Package compare implements the keyed comparison pipeline: synthetic key
// building, dataset alignment with first-wins deduplication, the cell-level
// diff over the unioned keys, and the change type summary.
package compare

import (
	"github.com/dbsmedya/gocompare/internal/types"
)

// ChangeType classifies one keyed row pair in the diff report.
type ChangeType string

const (
	Added     ChangeType = "Added"
	Removed   ChangeType = "Removed"
	Modified  ChangeType = "Modified"
	Unchanged ChangeType = "Unchanged"
)

// CellPair carries the old (secondary) and new (main) value of one column
// for a unioned key, verbatim and with nulls preserved.
type CellPair struct {
	Old types.Value
	New types.Value
}

// Changed reports whether the pair counts as a change. Two nulls never
// change, one null always does, and two present values compare by their
// string forms, folded when the comparison is case insensitive.
func (p CellPair) Changed(caseSensitive bool) bool {
	if p.Old.IsNull() && p.New.IsNull() {
		return false
	}
	if p.Old.IsNull() != p.New.IsNull() {
		return true
	}
	if caseSensitive {
		return p.Old.String() != p.New.String()
	}
	return p.Old.Fold() != p.New.Fold()
}

// DiffRow is one report record: the synthetic key, the old/new pair for
// every unioned column, and the classification.
type DiffRow struct {
	Key    string
	Cells  map[string]CellPair
	Change ChangeType
}

// Cell returns the pair for a column, all-null when the column is unknown.
func (r DiffRow) Cell(column string) CellPair {
	if p, ok := r.Cells[column]; ok {
		return p
	}
	return CellPair{Old: types.NullValue(), New: types.NullValue()}
}

// Report is the ordered diff output: exactly one DiffRow per unioned key,
// in UnionKeys order.
type Report struct {
	Columns []string
	Rows    []DiffRow
}

// Diff walks the unioned keys of an alignment and classifies each one.
// Precedence: a key missing from the secondary side is Added, a key missing
// from the main side is Removed, a present pair with any changed cell is
// Modified, everything else is Unchanged.
func Diff(alignment *Alignment, caseSensitive bool) *Report {
	report := &Report{
		Columns: alignment.UnionColumns,
		Rows:    make([]DiffRow, 0, len(alignment.UnionKeys)),
	}

	for _, key := range alignment.UnionKeys {
		rowNew, inMain := alignment.Main.Get(key)
		rowOld, inSecondary := alignment.Secondary.Get(key)

		// A missing side reads as an all-null row: Row.Value on the nil
		// row map yields null for every column.
		cells := make(map[string]CellPair, len(alignment.UnionColumns))
		changed := false
		for _, column := range alignment.UnionColumns {
			pair := CellPair{
				Old: rowOld.Value(column),
				New: rowNew.Value(column),
			}
			if pair.Changed(caseSensitive) {
				changed = true
			}
			cells[column] = pair
		}

		row := DiffRow{Key: key, Cells: cells}
		switch {
		case !inSecondary:
			row.Change = Added
		case !inMain:
			row.Change = Removed
		case changed:
			row.Change = Modified
		default:
			row.Change = Unchanged
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}
