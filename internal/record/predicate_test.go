package record

import (
	"math"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string // empty means absent
	}{
		{"ISODate", "2025-04-01", "2025-04-01T00:00:00Z"},
		{"SpaceDateTime", "2025-04-01 13:30:00", "2025-04-01T13:30:00Z"},
		{"RFC3339", "2025-04-01T13:30:00+01:00", "2025-04-01T12:30:00Z"},
		{"UKDate", "15/04/2025", "2025-04-15T00:00:00Z"},
		{"Padded", "  2025-04-01 ", "2025-04-01T00:00:00Z"},
		{"Empty", "", ""},
		{"Garbage", "not a date", ""},
		{"Nil", nil, ""},
		{"Number", 45123.0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.value)
			if tt.expected == "" {
				if got != nil {
					t.Errorf("Expected absent date, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Expected %s, got absent", tt.expected)
			}
			if s := got.UTC().Format(time.RFC3339); s != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, s)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	half := time.Date(2025, 4, 11, 12, 0, 0, 0, time.UTC)

	if d, ok := DaysBetween(&a, &b); !ok || d != 10 {
		t.Errorf("Expected 10 days, got %d (ok=%v)", d, ok)
	}
	if d, ok := DaysBetween(&b, &a); !ok || d != -10 {
		t.Errorf("Expected -10 days, got %d (ok=%v)", d, ok)
	}
	if d, _ := DaysBetween(&a, &half); d != 11 {
		t.Errorf("Expected 10.5 days to round up to 11, got %d", d)
	}
	if _, ok := DaysBetween(nil, &b); ok {
		t.Error("Expected absent result when start is missing")
	}
	if _, ok := DaysBetween(&a, nil); ok {
		t.Error("Expected absent result when end is missing")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 3}, {2.4, 2}, {-2.5, -2}, {-2.6, -3}, {0, 0}, {74.999, 75},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{"Float", 4.0, 4},
		{"Int", 3, 3},
		{"NumericString", " 12.5 ", 12.5},
		{"EmptyString", "", 0},
		{"Text", "n/a", 0},
		{"NaNString", "NaN", 0},
		{"InfString", "Inf", 0},
		{"NaN", math.NaN(), 0},
		{"Bool", true, 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceNumber(tt.value); got != tt.expected {
				t.Errorf("CoerceNumber(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestAsNumber(t *testing.T) {
	if _, ok := AsNumber("5"); ok {
		t.Error("Numeric strings must not count as genuine numbers")
	}
	if v, ok := AsNumber(5.0); !ok || v != 5 {
		t.Errorf("Expected 5, got %v (ok=%v)", v, ok)
	}
	if _, ok := AsNumber(math.Inf(1)); ok {
		t.Error("Infinity must not count as a genuine number")
	}
}

func TestText(t *testing.T) {
	r := Record{"p": 2503.0, "s": " x ", "b": true, "n": nil}
	if got := r.Text("p"); got != "2503" {
		t.Errorf("Expected 2503, got %q", got)
	}
	if got := r.Text("s"); got != "x" {
		t.Errorf("Expected x, got %q", got)
	}
	if got := r.Text("b"); got != "true" {
		t.Errorf("Expected true, got %q", got)
	}
	if got := r.Text("n"); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
	if got := r.Text("missing"); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
}
