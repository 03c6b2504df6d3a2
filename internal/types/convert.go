package types

import (
	"fmt"
	"strconv"
	"time"
)

// FromAny converts a value scanned from a database/sql row into a Value.
// Integer and float driver types become numbers, byte slices and strings
// become text, NULL becomes null. Unrecognized types fall back to their
// fmt representation as text.
func FromAny(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case int64:
		return NumberValue(float64(x))
	case int:
		return NumberValue(float64(x))
	case int32:
		return NumberValue(float64(x))
	case int16:
		return NumberValue(float64(x))
	case int8:
		return NumberValue(float64(x))
	case uint64:
		return NumberValue(float64(x))
	case uint32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	case float32:
		return NumberValue(float64(x))
	case bool:
		return TextValue(strconv.FormatBool(x))
	case time.Time:
		return TextValue(x.Format("2006-01-02 15:04:05"))
	case []byte:
		return TextValue(string(x))
	case string:
		return TextValue(x)
	default:
		return TextValue(fmt.Sprintf("%v", x))
	}
}
