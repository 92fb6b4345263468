package lunar

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ToNumber converts a loosely typed value to an int.
//
// Integers are used as is, floats are truncated toward zero and numeric
// text is parsed. Integers too large for int saturate at its limits so
// range validation still rejects them. ok is false for nil, booleans,
// NaN/Inf and anything that does not read as a number; callers treat that
// as an absent value.
func ToNumber(v any) (n int, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return fromUint(uint64(x)), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return fromUint(x), true
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		return parseNumber(x.String())
	case *big.Int:
		if x == nil {
			return 0, false
		}
		return fromBigInt(x), true
	case *big.Float:
		if x == nil || x.IsInf() {
			return 0, false
		}
		i, _ := x.Int64()
		return int(i), true
	case string:
		return parseNumber(x)
	case []byte:
		return parseNumber(string(x))
	case fmt.Stringer:
		return parseNumber(x.String())
	default:
		return 0, false
	}
}

func fromUint(u uint64) int {
	if u > math.MaxInt {
		return math.MaxInt
	}
	return int(u)
}

func fromBigInt(x *big.Int) int {
	switch {
	case x.IsInt64():
		return int(x.Int64())
	case x.Sign() > 0:
		return math.MaxInt
	default:
		return math.MinInt
	}
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i), true
	}
	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) > 2 && unsigned[0] == '0' && strings.ContainsRune("xXoObB", rune(unsigned[1])) {
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return int(i), true
		}
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromFloat(f)
	}
	return 0, false
}

// Coerce maps positional arguments (year, month, day, hour, minute, second)
// onto Fields. Absent values default to month=1, day=1 and a zero clock;
// an absent year is reported as a missing-year *FieldError. Extra
// arguments are ignored. The result is not range checked, except that an
// integer too large to hold is reported as a *FieldError naming its value.
func Coerce(args ...any) (Fields, error) {
	f := Fields{Month: 1, Day: 1}
	targets := []*int{&f.Year, &f.Month, &f.Day, &f.Hour, &f.Minute, &f.Second}

	yearSet := false
	for i, arg := range args {
		if i >= len(targets) {
			break
		}
		if x, ok := arg.(*big.Int); ok && x != nil && !x.IsInt64() {
			b := bounds[i]
			return f, &FieldError{Field: b.field, Text: x.String(), Min: b.min, Max: b.max, Hint: b.hint}
		}
		n, ok := ToNumber(arg)
		if !ok {
			continue
		}
		*targets[i] = n
		if i == 0 {
			yearSet = true
		}
	}

	if !yearSet {
		return f, &FieldError{Field: "year", Missing: true, Min: MinYear, Max: MaxYear}
	}
	return f, nil
}
