package stats

import (
	"sheq-kpi/internal/record"
)

// KPIDefinition configures how a single headline KPI is judged over time.
type KPIDefinition struct {
	ID             string      `json:"id" yaml:"id"`
	Label          string      `json:"label" yaml:"label"`
	Kind           record.Kind `json:"kind" yaml:"kind"`
	HigherIsBetter bool        `json:"higherIsBetter" yaml:"higher_is_better"`
	IsPercent      bool        `json:"isPercent" yaml:"is_percent"`
}

// KPIOverride adjusts the directionality of a built-in KPI. Nil fields keep the default.
type KPIOverride struct {
	Label          *string `yaml:"label"`
	HigherIsBetter *bool   `yaml:"higher_is_better"`
}

// kpiValues extracts each KPI from a period's metrics.
var kpiValues = map[string]func(PeriodMetrics) float64{
	"sa_total":      func(p PeriodMetrics) float64 { return float64(p.Actions.Total) },
	"sa_open":       func(p PeriodMetrics) float64 { return float64(p.Actions.Open) },
	"sa_closed":     func(p PeriodMetrics) float64 { return float64(p.Actions.Closed) },
	"sa_overdue":    func(p PeriodMetrics) float64 { return float64(p.Actions.Overdue) },
	"sa_pct_closed": func(p PeriodMetrics) float64 { return float64(p.Actions.PercentClosed) },
	"sa_avg_days":   func(p PeriodMetrics) float64 { return float64(p.Actions.AvgDays) },
	"sa_sla":        func(p PeriodMetrics) float64 { return float64(p.Actions.SLAPercent) },
	"inc_total":     func(p PeriodMetrics) float64 { return float64(p.Incidents.Total) },
	"inc_open":      func(p PeriodMetrics) float64 { return float64(p.Incidents.Open) },
	"inc_closed":    func(p PeriodMetrics) float64 { return float64(p.Incidents.Closed) },
	"inc_overdue":   func(p PeriodMetrics) float64 { return float64(p.Incidents.Overdue) },
	"inc_riddor":    func(p PeriodMetrics) float64 { return float64(p.Incidents.Riddor) },
	"inc_dayslost":  func(p PeriodMetrics) float64 { return p.Incidents.DaysLost },
	"inc_sla":       func(p PeriodMetrics) float64 { return float64(p.Incidents.SLAPercent) },
}

// DefaultKPIs returns the built-in KPI table in display order.
func DefaultKPIs() []KPIDefinition {
	return []KPIDefinition{
		{ID: "sa_total", Label: "Actions raised", Kind: record.Actions, HigherIsBetter: true},
		{ID: "sa_open", Label: "Open actions", Kind: record.Actions},
		{ID: "sa_closed", Label: "Closed actions", Kind: record.Actions, HigherIsBetter: true},
		{ID: "sa_overdue", Label: "Overdue actions", Kind: record.Actions},
		{ID: "sa_pct_closed", Label: "% actions closed", Kind: record.Actions, HigherIsBetter: true, IsPercent: true},
		{ID: "sa_avg_days", Label: "Avg days to close", Kind: record.Actions},
		{ID: "sa_sla", Label: "Actions closed within target", Kind: record.Actions, HigherIsBetter: true, IsPercent: true},
		{ID: "inc_total", Label: "Incidents", Kind: record.Incidents},
		{ID: "inc_open", Label: "Open incidents", Kind: record.Incidents},
		{ID: "inc_closed", Label: "Closed incidents", Kind: record.Incidents, HigherIsBetter: true},
		{ID: "inc_overdue", Label: "Overdue investigations", Kind: record.Incidents},
		{ID: "inc_riddor", Label: "RIDDOR reportable", Kind: record.Incidents},
		{ID: "inc_dayslost", Label: "Days lost", Kind: record.Incidents},
		{ID: "inc_sla", Label: "Investigations on time", Kind: record.Incidents, HigherIsBetter: true, IsPercent: true},
	}
}

// ApplyKPIOverrides returns a copy of defs with overrides applied by ID.
// Unknown IDs are ignored. Whether a KPI is a percentage is fixed by its metric.
func ApplyKPIOverrides(defs []KPIDefinition, overrides map[string]KPIOverride) []KPIDefinition {
	out := make([]KPIDefinition, len(defs))
	copy(out, defs)
	for i := range out {
		o, ok := overrides[out[i].ID]
		if !ok {
			continue
		}
		if o.Label != nil {
			out[i].Label = *o.Label
		}
		if o.HigherIsBetter != nil {
			out[i].HigherIsBetter = *o.HigherIsBetter
		}
	}
	return out
}

// KPIValue extracts the value of a KPI from a period's metrics.
// ok is false for unknown IDs or when the period holds no records of the KPI's kind.
func KPIValue(def KPIDefinition, p PeriodMetrics) (float64, bool) {
	extract, known := kpiValues[def.ID]
	if !known || !p.Valid {
		return 0, false
	}
	switch def.Kind {
	case record.Actions:
		if p.Actions.Total == 0 {
			return 0, false
		}
	case record.Incidents:
		if p.Incidents.Total == 0 {
			return 0, false
		}
	}
	return extract(p), true
}
