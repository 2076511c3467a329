// Package period implements the YYPP reporting-period calendar: a two-digit year
// followed by a two-digit period number. Periods always run 1-12 regardless of the
// calendar convention in use; a year with thirteen four-week periods is not modelled.
package period

import (
	"fmt"
	"strconv"
	"strings"

	"sheq-kpi/internal/record"
)

// PeriodsPerYear is the fixed rollover point for period arithmetic.
const PeriodsPerYear = 12

// Code is a decomposed period code.
type Code struct {
	Year   int `json:"year"`
	Period int `json:"period"`
}

// Parse decomposes a YYPP code. It fails only when the trimmed text is not an integer.
func Parse(code string) (Code, error) {
	s := strings.TrimSpace(code)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Code{}, fmt.Errorf("invalid period code %q", code)
	}
	return Code{Year: n / 100, Period: n % 100}, nil
}

// String encodes the code, padding year and period to two digits each.
func (c Code) String() string {
	return fmt.Sprintf("%02d%02d", wrapYear(c.Year), c.Period)
}

// Previous returns the preceding period, rolling period 1 back into period 12 of the prior year.
func (c Code) Previous() Code {
	if c.Period > 1 {
		return Code{Year: c.Year, Period: c.Period - 1}
	}
	return Code{Year: wrapYear(c.Year - 1), Period: PeriodsPerYear}
}

// SameLastYear returns the same period one year earlier.
func (c Code) SameLastYear() Code {
	return Code{Year: wrapYear(c.Year - 1), Period: c.Period}
}

// Previous is the string form of Parse(code).Previous().
func Previous(code string) (string, error) {
	c, err := Parse(code)
	if err != nil {
		return "", err
	}
	return c.Previous().String(), nil
}

// SameLastYear is the string form of Parse(code).SameLastYear().
func SameLastYear(code string) (string, error) {
	c, err := Parse(code)
	if err != nil {
		return "", err
	}
	return c.SameLastYear().String(), nil
}

// Normalize turns a raw period field into comparable code text. Integral values,
// whether JSON numbers or numeric strings, are zero-padded to four digits; anything
// else is returned trimmed.
func Normalize(v any) string {
	s := record.Text(v)
	if s == "" {
		return ""
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < 10000 {
		return fmt.Sprintf("%04d", n)
	}
	// Spreadsheet exports sometimes stringify integers as "2503.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f < 10000 && f == float64(int(f)) {
		return fmt.Sprintf("%04d", int(f))
	}
	return s
}

// wrapYear keeps two-digit year arithmetic in 00-99 (00 - 1 = 99).
func wrapYear(y int) int {
	return ((y % 100) + 100) % 100
}
