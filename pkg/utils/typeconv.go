package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToString renders a scanned column value as trimmed text.
// nil becomes the empty string.
func ToString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// IsBlank reports whether a column value is NULL or only whitespace.
func IsBlank(val interface{}) bool {
	return ToString(val) == ""
}

// ToInt64 converts a scanned column value to an integer.
// Fractional values are truncated.
func ToInt64(val interface{}) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string, []byte:
		s := ToString(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to int", s)
		}
		return d.IntPart(), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", val)
	}
}

// IntOrZero is ToInt64 with NULL and unparseable input mapped to 0.
func IntOrZero(val interface{}) int64 {
	if IsBlank(val) {
		return 0
	}
	n, err := ToInt64(val)
	if err != nil {
		return 0
	}
	return n
}

// ToDecimal converts a scanned column value to a decimal amount.
// The boolean is false when the value is NULL, blank or not numeric.
func ToDecimal(val interface{}) (decimal.Decimal, bool) {
	switch v := val.(type) {
	case nil:
		return decimal.Zero, false
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case decimal.Decimal:
		return v, true
	}

	s := ToString(val)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(normalizeNumber(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeNumber rewrites legacy amounts such as "12,50", "1.234,56" or
// "1,234.56" with a single '.' decimal separator. When both separators
// appear, the last one is the decimal mark. A lone comma is a decimal
// mark; a repeated one is a thousands separator.
func normalizeNumber(s string) string {
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") == 1 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
