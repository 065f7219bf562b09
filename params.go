package docdex

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Search parameter bounds.
const (
	DefaultLimit     = 10
	MinLimit         = 1
	MaxLimit         = 100
	DefaultThreshold = 60
	MinThreshold     = 0
	MaxThreshold     = 100

	// MaxTermRunes bounds query length before any I/O happens.
	MaxTermRunes = 500
)

// ParseLimit coerces a caller-supplied limit into a valid integer.
// Transports hand over untyped JSON values, so numeric types and
// numeric strings are accepted; floating point truncates toward zero.
// Anything non-numeric fails with EINVALID. A nil value selects
// DefaultLimit. The result clamps to [MinLimit, MaxLimit], so 3.7
// becomes 3, -5 becomes 1 and 500 becomes 100.
func ParseLimit(v any) (int, error) {
	if v == nil {
		return DefaultLimit, nil
	}
	n, err := parseNumber(v)
	if err != nil {
		return 0, Errorf(EINVALID, "limit must be an integer")
	}
	return ClampLimit(n), nil
}

// ParseThreshold coerces a caller-supplied score threshold the same way
// ParseLimit does. A nil value selects DefaultThreshold; the result
// clamps to [MinThreshold, MaxThreshold].
func ParseThreshold(v any) (int, error) {
	if v == nil {
		return DefaultThreshold, nil
	}
	n, err := parseNumber(v)
	if err != nil {
		return 0, Errorf(EINVALID, "threshold must be an integer")
	}
	return ClampThreshold(n), nil
}

// ClampLimit clamps n to [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	return clampInt(n, MinLimit, MaxLimit)
}

// ClampThreshold clamps n to [MinThreshold, MaxThreshold].
func ClampThreshold(n int) int {
	return clampInt(n, MinThreshold, MaxThreshold)
}

// ValidateTerm rejects empty and oversized query terms. It is cheap
// enough to run before any I/O.
func ValidateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return Errorf(EINVALID, "search term required")
	}
	if utf8.RuneCountInString(term) > MaxTermRunes {
		return Errorf(EINVALID, "search term exceeds %d characters", MaxTermRunes)
	}
	return nil
}

// parseNumber converts ints, floats, json.Number and numeric strings to
// an int, truncating fractional values toward zero.
func parseNumber(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case float32:
		return int(x), nil
	case float64:
		return int(x), nil
	case json.Number:
		return parseNumericString(string(x))
	case string:
		return parseNumericString(x)
	default:
		return 0, Errorf(EINVALID, "not a number")
	}
}

func parseNumericString(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
