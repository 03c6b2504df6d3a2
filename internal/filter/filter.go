// Package filter implements row-level predicate evaluation for datasets.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dbsmedya/gocompare/internal/config"
	"github.com/dbsmedya/gocompare/internal/types"
)

// Supported filter operators.
const (
	OpEqual          = "=="
	OpNotEqual       = "!="
	OpGreater        = ">"
	OpGreaterOrEqual = ">="
	OpLess           = "<"
	OpLessOrEqual    = "<="
	OpContains       = "contains"
	OpNotContains    = "not-contains"
)

// FilterError reports a filter that cannot be evaluated against a dataset:
// a missing column or an undefined ordering between incompatible types.
// Any FilterError aborts the whole filter pass for that dataset.
type FilterError struct {
	Column   string
	Operator string
	Message  string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("cannot evaluate filter on column %q (%s): %s", e.Column, e.Operator, e.Message)
}

// Apply evaluates the filters against the dataset as a sequential narrowing:
// each filter further restricts the row set, so the filters compose as a
// logical AND. It returns a new dataset with the surviving rows, or a
// FilterError; on error no partial result is returned.
func Apply(ds *types.Dataset, filters []config.Filter) (*types.Dataset, error) {
	result := ds
	for _, f := range filters {
		narrowed, err := applyOne(result, f)
		if err != nil {
			return nil, err
		}
		result = narrowed
	}
	return result, nil
}

func applyOne(ds *types.Dataset, f config.Filter) (*types.Dataset, error) {
	if !ds.HasColumn(f.Column) {
		return nil, &FilterError{
			Column:   f.Column,
			Operator: f.Operator,
			Message:  "column not found in dataset",
		}
	}

	// The filter value is parsed once: a fully numeric text compares as a
	// number, anything else as trimmed text. The contains operators work
	// on the string form of that parsed value, so "007" matches as "7".
	value := types.ParseValue(f.Value)

	match, err := matcher(f, value)
	if err != nil {
		return nil, err
	}

	out := types.NewDataset(ds.Columns)
	for _, row := range ds.Rows {
		ok, err := match(row.Value(f.Column))
		if err != nil {
			return nil, err
		}
		if ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// matcher builds the per-cell predicate for one filter.
func matcher(f config.Filter, value types.Value) (func(types.Value) (bool, error), error) {
	switch f.Operator {
	case OpEqual:
		return func(cell types.Value) (bool, error) {
			return cell.Equal(value), nil
		}, nil

	case OpNotEqual:
		return func(cell types.Value) (bool, error) {
			return !cell.Equal(value), nil
		}, nil

	case OpGreater, OpGreaterOrEqual, OpLess, OpLessOrEqual:
		return orderingMatcher(f, value), nil

	case OpContains, OpNotContains:
		return containsMatcher(f, value)

	default:
		return nil, &FilterError{
			Column:   f.Column,
			Operator: f.Operator,
			Message:  "unsupported operator",
		}
	}
}

// orderingMatcher compares cells against the filter value under the value's
// natural ordering. Null cells never satisfy an ordering; a number ordered
// against a text is a fatal error.
func orderingMatcher(f config.Filter, value types.Value) func(types.Value) (bool, error) {
	return func(cell types.Value) (bool, error) {
		if cell.IsNull() {
			return false, nil
		}
		cmp, err := cell.Compare(value)
		if err != nil {
			return false, &FilterError{
				Column:   f.Column,
				Operator: f.Operator,
				Message:  err.Error(),
			}
		}
		switch f.Operator {
		case OpGreater:
			return cmp > 0, nil
		case OpGreaterOrEqual:
			return cmp >= 0, nil
		case OpLess:
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}
	}
}

// containsMatcher tests substring or regexp containment on the string forms
// of cell and filter value, folding case on both operands unless the filter
// is case sensitive.
func containsMatcher(f config.Filter, value types.Value) (func(types.Value) (bool, error), error) {
	negate := f.Operator == OpNotContains

	if f.UseRegex {
		pattern := value.String()
		if !f.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &FilterError{
				Column:   f.Column,
				Operator: f.Operator,
				Message:  fmt.Sprintf("invalid regular expression: %v", err),
			}
		}
		return func(cell types.Value) (bool, error) {
			return re.MatchString(cell.String()) != negate, nil
		}, nil
	}

	needle := value.String()
	if !f.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	return func(cell types.Value) (bool, error) {
		haystack := cell.String()
		if !f.CaseSensitive {
			haystack = strings.ToLower(haystack)
		}
		return strings.Contains(haystack, needle) != negate, nil
	}, nil
}
