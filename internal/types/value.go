// Package types contains the scalar and dataset types shared across the
// comparison pipeline to avoid import cycles.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	// KindNull marks a missing or empty cell.
	KindNull Kind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindText marks a textual cell.
	KindText
)

// NullText is the canonical text form of a null value. Synthetic keys,
// stringified comparisons, and contains-style filters all rely on it.
const NullText = "None"

// Value is a tagged scalar cell value: a number, a text, or null.
// The zero value is null.
type Value struct {
	kind Kind
	num  float64
	text string
}

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// TextValue returns a textual Value.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// NullValue returns the null Value.
func NullValue() Value {
	return Value{kind: KindNull}
}

// ParseValue parses raw text into a Value. The text is trimmed; if the
// whole trimmed text parses as a number the result is numeric, otherwise
// it is the trimmed text. Empty text stays textual; loaders decide
// separately whether an empty cell means null.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberValue(f)
	}
	return TextValue(trimmed)
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Number returns the numeric payload. The bool is false for non-numbers.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String returns the canonical text form: numbers render without a
// trailing ".0" when integral, null renders as NullText.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return NullText
	}
}

// Fold returns the canonical text form lower-cased, for case-insensitive
// comparison and key building.
func (v Value) Fold() string {
	return strings.ToLower(v.String())
}

// Equal reports exact equality: same kind and same payload. Numbers never
// equal texts, even when their text forms coincide.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	default:
		return true
	}
}

// Compare orders two non-null values: numbers numerically, texts
// lexicographically. Ordering a number against a text has no defined
// result and returns an error; callers treat it as fatal.
func (v Value) Compare(o Value) (int, error) {
	if v.kind == KindNull || o.kind == KindNull {
		return 0, fmt.Errorf("cannot order null values")
	}
	if v.kind != o.kind {
		return 0, fmt.Errorf("cannot order %s against %s", v.kindName(), o.kindName())
	}
	if v.kind == KindNumber {
		switch {
		case v.num < o.num:
			return -1, nil
		case v.num > o.num:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return strings.Compare(v.text, o.text), nil
}

func (v Value) kindName() string {
	switch v.kind {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}
