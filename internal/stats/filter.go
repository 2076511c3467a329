package stats

import (
	"strings"
	"time"

	"sheq-kpi/internal/period"
	"sheq-kpi/internal/record"
)

// Criteria is the user-selected filter. Empty strings are no-ops.
type Criteria struct {
	Period     string `json:"period,omitempty" yaml:"period,omitempty"`
	Start      string `json:"start,omitempty" yaml:"start,omitempty"`
	End        string `json:"end,omitempty" yaml:"end,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Period) == "" &&
		strings.TrimSpace(c.Start) == "" &&
		strings.TrimSpace(c.End) == "" &&
		strings.TrimSpace(c.Department) == ""
}

// Filter returns the records of the given kind that satisfy every criterion, in input order.
func Filter(records []record.Record, kind record.Kind, c Criteria) []record.Record {
	periodCode := period.Normalize(c.Period)
	dept := strings.TrimSpace(c.Department)
	start := record.ParseDate(c.Start)
	end := record.ParseDate(c.End)

	periodField := record.PeriodField(kind)
	dateField := record.DateField(kind)

	result := make([]record.Record, 0, len(records))
	for _, r := range records {
		// 1. Period (exact match on the normalized code)
		if periodCode != "" {
			v, _ := r.Value(periodField)
			if period.Normalize(v) != periodCode {
				continue
			}
		}

		// 2. Date range (records without a date always pass)
		if start != nil || end != nil {
			if !inDateRange(r.Date(dateField), start, end) {
				continue
			}
		}

		// 3. Department
		if dept != "" && record.ResolveDepartment(r) != dept {
			continue
		}

		result = append(result, r)
	}
	return result
}

// FilterByExactPeriod pulls a historical slice for trend comparison. Date-range
// criteria never apply here.
func FilterByExactPeriod(records []record.Record, kind record.Kind, periodCode, department string) []record.Record {
	return Filter(records, kind, Criteria{Period: periodCode, Department: department})
}

func inDateRange(d, start, end *time.Time) bool {
	if d == nil {
		return true
	}
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}
