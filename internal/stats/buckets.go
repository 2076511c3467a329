package stats

import (
	"slices"

	"sheq-kpi/internal/record"
)

// Bucket is the frequency of a single category value.
type Bucket struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// Bucketize frequency-counts a categorical field, descending by count. The value is
// read from field, falling back to altField when field is missing. Blank categories
// are dropped. Equal counts keep the order in which categories were first seen.
func Bucketize(records []record.Record, field, altField string) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket

	for _, r := range records {
		v := record.ResolveCategory(r, field, altField)
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			buckets[i].Count++
			continue
		}
		index[v] = len(buckets)
		buckets = append(buckets, Bucket{Category: v, Count: 1})
	}

	slices.SortStableFunc(buckets, func(a, b Bucket) int {
		return b.Count - a.Count
	})
	return buckets
}

// Breakdown identifies one of the standard category breakdowns.
type Breakdown struct {
	ID       string      `json:"id" yaml:"id"`
	Title    string      `json:"title" yaml:"title"`
	Label    string      `json:"label" yaml:"label"`
	Kind     record.Kind `json:"kind" yaml:"kind"`
	Field    string      `json:"field" yaml:"field"`
	AltField string      `json:"altField,omitempty" yaml:"altField,omitempty"`
}

// StandardBreakdowns lists the dashboard's category breakdowns in display order.
var StandardBreakdowns = []Breakdown{
	{ID: "actions_by_type", Title: "Actions by type", Label: "Type", Kind: record.Actions, Field: record.FieldActionType},
	{ID: "actions_by_dept", Title: "Actions by department", Label: "Department", Kind: record.Actions, Field: record.FieldDept, AltField: record.FieldFunction},
	{ID: "incidents_by_type", Title: "Incidents by type", Label: "Incident Type", Kind: record.Incidents, Field: record.FieldIncidentType, AltField: record.FieldAccidentIncidentType},
	{ID: "incidents_by_function", Title: "Incidents by function", Label: "Function", Kind: record.Incidents, Field: record.FieldFunction},
}

// FindBreakdown looks up a standard breakdown by ID.
func FindBreakdown(id string) (Breakdown, bool) {
	for _, b := range StandardBreakdowns {
		if b.ID == id {
			return b, true
		}
	}
	return Breakdown{}, false
}

// BreakdownResult is a breakdown together with its buckets.
type BreakdownResult struct {
	Breakdown Breakdown `json:"breakdown" yaml:"breakdown"`
	Buckets   []Bucket  `json:"buckets" yaml:"buckets"`
}
