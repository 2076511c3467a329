package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Date-only values are interpreted as UTC midnight.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"02/01/2006",
}

// ParseDate converts a field value to a point in time. Absent, blank and
// unparseable values all yield nil.
func ParseDate(v any) *time.Time {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return &val
	case *time.Time:
		if val == nil || val.IsZero() {
			return nil
		}
		t := *val
		return &t
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	return nil
}

// Date parses a field of the record as a date.
func (r Record) Date(field string) *time.Time {
	v, ok := r.Value(field)
	if !ok {
		return nil
	}
	return ParseDate(v)
}

// DaysBetween returns the whole number of days from a to b, rounded half up.
// The result is negative when b precedes a. ok is false when either side is absent.
func DaysBetween(a, b *time.Time) (days int, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return int(Round(b.Sub(*a).Hours() / 24)), true
}

// Round rounds half up (towards positive infinity), e.g. 2.5 -> 3 and -2.5 -> -2.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// AsNumber reports whether v is a genuine, finite JSON number. Numeric strings do not count.
func AsNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceNumber converts numbers and numeric strings to float64. Everything else,
// including NaN and infinities, becomes 0 so sums never turn into NaN.
func CoerceNumber(v any) float64 {
	if f, ok := AsNumber(v); ok {
		return f
	}
	s, ok := v.(string)
	if !ok {
		return 0
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
