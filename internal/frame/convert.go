package frame

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToInt64 converts a scalar value to int64, best effort. Unconvertible
// values yield 0.
func ToInt64(v interface{}) int64 {
	switch i := v.(type) {
	case int64:
		return i
	case int:
		return int64(i)
	case int32:
		return int64(i)
	case int16:
		return int64(i)
	case int8:
		return int64(i)
	case uint:
		return int64(i)
	case uint64:
		return int64(i)
	case uint32:
		return int64(i)
	case uint16:
		return int64(i)
	case uint8:
		return int64(i)
	case float64:
		return int64(i)
	case float32:
		return int64(i)
	case string:
		n, _ := strconv.ParseInt(i, 10, 64)
		return n
	case bool:
		if i {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// ToFloat64 converts a scalar value to float64, best effort.
func ToFloat64(v interface{}) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return float64(ToInt64(v)), true
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// inferDtype derives a column dtype from in-memory values. The first
// non-nil value decides; an all-nil column defaults to string.
func inferDtype(values []interface{}) Dtype {
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return DtypeInt
		case float32, float64:
			return DtypeFloat
		case bool:
			return DtypeBool
		case time.Time:
			return DtypeTime
		default:
			return DtypeString
		}
	}
	return DtypeString
}

// coerceLiteral parses a textual literal into the given dtype.
func coerceLiteral(dtype Dtype, literal string) (interface{}, error) {
	switch dtype {
	case DtypeInt:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("literal %q is not an integer", literal)
		}
		return n, nil
	case DtypeFloat:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, fmt.Errorf("literal %q is not a number", literal)
		}
		return f, nil
	case DtypeBool:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, fmt.Errorf("literal %q is not a boolean", literal)
		}
		return b, nil
	case DtypeTime:
		t, err := time.Parse(time.RFC3339, literal)
		if err != nil {
			return nil, fmt.Errorf("literal %q is not an RFC3339 timestamp", literal)
		}
		return t, nil
	default:
		return strings.Trim(literal, `"'`), nil
	}
}

// compareValues orders two scalars of the same column dtype. Returns a
// negative, zero, or positive result like strings.Compare. Values that do
// not coerce to the column dtype fall back to string comparison.
func compareValues(dtype Dtype, a, b interface{}) int {
	switch dtype {
	case DtypeInt, DtypeFloat:
		fa, oka := ToFloat64(a)
		fb, okb := ToFloat64(b)
		if oka && okb {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	case DtypeBool:
		return int(ToInt64(a) - ToInt64(b))
	case DtypeTime:
		ta, oka := a.(time.Time)
		tb, okb := b.(time.Time)
		if oka && okb {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

// Argument extraction helpers shared by the raw operations.

func stringArg(args []interface{}, i int, op string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%s: missing argument %d", op, i)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %T", op, i, args[i])
	}
	return s, nil
}

func intArg(args []interface{}, i int, op string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%s: missing argument %d", op, i)
	}
	switch v := args[i].(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return int(ToInt64(v)), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s: argument %d %q is not an integer", op, i, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: argument %d must be an integer, got %T", op, i, args[i])
	}
}

func boolArg(args []interface{}, i int, op string) (bool, error) {
	if i >= len(args) {
		return false, fmt.Errorf("%s: missing argument %d", op, i)
	}
	switch v := args[i].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%s: argument %d %q is not a boolean", op, i, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%s: argument %d must be a boolean, got %T", op, i, args[i])
	}
}
