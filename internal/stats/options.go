package stats

import (
	"slices"

	"sheq-kpi/internal/period"
	"sheq-kpi/internal/record"
)

// FilterOptions are the distinct values offered by the period and department selectors.
type FilterOptions struct {
	Periods     []string `json:"periods" yaml:"periods"`
	Departments []string `json:"departments" yaml:"departments"`
}

// DiscoverFilterOptions collects the sorted distinct periods and departments present in
// either collection. Actions contribute both Dept and Function; incidents contribute Function.
func DiscoverFilterOptions(actions, incidents []record.Record) FilterOptions {
	periods := make(map[string]struct{})
	depts := make(map[string]struct{})

	add := func(set map[string]struct{}, v string) {
		if v != "" {
			set[v] = struct{}{}
		}
	}

	for _, r := range actions {
		v, _ := r.Value(record.FieldPeriodRaised)
		add(periods, period.Normalize(v))
		add(depts, r.Text(record.FieldDept))
		add(depts, r.Text(record.FieldFunction))
	}
	for _, r := range incidents {
		v, _ := r.Value(record.FieldReportingPeriod)
		add(periods, period.Normalize(v))
		add(depts, r.Text(record.FieldFunction))
	}

	return FilterOptions{
		Periods:     sortedKeys(periods),
		Departments: sortedKeys(depts),
	}
}

// LatestPeriod returns the greatest valid period code present in either collection, or "".
func LatestPeriod(actions, incidents []record.Record) string {
	latest := ""
	for _, p := range DiscoverFilterOptions(actions, incidents).Periods {
		if _, err := period.Parse(p); err != nil {
			continue
		}
		if len(p) == 4 && p > latest {
			latest = p
		}
	}
	return latest
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
