package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"sheq-kpi/internal/period"
	"sheq-kpi/internal/record"
)

// Direction is the judgment of a KPI against a baseline.
type Direction string

const (
	Improved    Direction = "improved"
	Worsened    Direction = "worsened"
	Unchanged   Direction = "unchanged"
	Unavailable Direction = "unavailable"
)

// PeriodMetrics holds both metric sets for one exact period slice.
type PeriodMetrics struct {
	Period    string          `json:"period" yaml:"period"`
	Valid     bool            `json:"valid" yaml:"valid"`
	Actions   ActionMetrics   `json:"actions" yaml:"actions"`
	Incidents IncidentMetrics `json:"incidents" yaml:"incidents"`
}

// Comparison is one directional judgment with its display labels.
type Comparison struct {
	Direction  Direction `json:"direction" yaml:"direction"`
	Delta      *float64  `json:"delta,omitempty" yaml:"delta,omitempty"`
	DeltaLabel string    `json:"deltaLabel" yaml:"deltaLabel"`
	Basis      string    `json:"basis" yaml:"basis"`
	Baseline   *float64  `json:"baseline,omitempty" yaml:"baseline,omitempty"`
}

// KPITrend is the pair of comparisons produced for a single KPI.
type KPITrend struct {
	ID         string      `json:"id" yaml:"id"`
	Label      string      `json:"label" yaml:"label"`
	Kind       record.Kind `json:"kind" yaml:"kind"`
	Current    *float64    `json:"current,omitempty" yaml:"current,omitempty"`
	VsPrevious Comparison  `json:"vsPrevious" yaml:"vsPrevious"`
	VsLastYear Comparison  `json:"vsLastYear" yaml:"vsLastYear"`
}

// TrendReport compares a period against the previous period and the same period last year.
type TrendReport struct {
	Period         string        `json:"period" yaml:"period"`
	PreviousPeriod string        `json:"previousPeriod,omitempty" yaml:"previousPeriod,omitempty"`
	LastYearPeriod string        `json:"lastYearPeriod,omitempty" yaml:"lastYearPeriod,omitempty"`
	Department     string        `json:"department,omitempty" yaml:"department,omitempty"`
	Current        PeriodMetrics `json:"current" yaml:"current"`
	Previous       PeriodMetrics `json:"previous" yaml:"previous"`
	LastYear       PeriodMetrics `json:"lastYear" yaml:"lastYear"`
	KPIs           []KPITrend    `json:"kpis" yaml:"kpis"`
}

// Lookup returns the trend for a KPI ID.
func (r TrendReport) Lookup(id string) (KPITrend, bool) {
	for _, k := range r.KPIs {
		if k.ID == id {
			return k, true
		}
	}
	return KPITrend{}, false
}

// CalculateTrends computes the current, previous and last-year slices for a period and
// judges every KPI in defs against both baselines. The date-range filter never applies.
func CalculateTrends(actions, incidents []record.Record, periodCode, department string, now time.Time, defs []KPIDefinition) TrendReport {
	report := TrendReport{
		Period:     period.Normalize(periodCode),
		Department: department,
	}

	code, err := period.Parse(report.Period)
	report.Current = PeriodMetrics{Period: report.Period, Valid: err == nil}
	if err == nil {
		report.PreviousPeriod = code.Previous().String()
		report.LastYearPeriod = code.SameLastYear().String()
		report.Previous = PeriodMetrics{Period: report.PreviousPeriod, Valid: true}
		report.LastYear = PeriodMetrics{Period: report.LastYearPeriod, Valid: true}
	}

	// The six slices are independent reads of the same immutable snapshot.
	var g errgroup.Group
	for _, pm := range []*PeriodMetrics{&report.Current, &report.Previous, &report.LastYear} {
		if !pm.Valid {
			continue
		}
		g.Go(func() error {
			pm.Actions = CalculateActionMetrics(FilterByExactPeriod(actions, record.Actions, pm.Period, department))
			return nil
		})
		g.Go(func() error {
			pm.Incidents = CalculateIncidentMetrics(FilterByExactPeriod(incidents, record.Incidents, pm.Period, department), now)
			return nil
		})
	}
	_ = g.Wait()

	report.KPIs = make([]KPITrend, 0, len(defs))
	for _, def := range defs {
		trend := KPITrend{ID: def.ID, Label: def.Label, Kind: def.Kind}

		var current *float64
		if v, ok := KPIValue(def, report.Current); ok {
			current = &v
		}
		trend.Current = current

		trend.VsPrevious = CompareKPI(def, current, baselineValue(def, report.Previous))
		trend.VsPrevious.Basis = basisLabel("vs previous period", report.PreviousPeriod)

		trend.VsLastYear = CompareKPI(def, current, baselineValue(def, report.LastYear))
		trend.VsLastYear.Basis = basisLabel("vs same period last year", report.LastYearPeriod)

		report.KPIs = append(report.KPIs, trend)
	}

	return report
}

func baselineValue(def KPIDefinition, p PeriodMetrics) *float64 {
	if v, ok := KPIValue(def, p); ok {
		return &v
	}
	return nil
}

// CompareKPI judges current against baseline. A nil or non-finite value on either
// side is unavailable; a zero difference is unchanged.
func CompareKPI(def KPIDefinition, current, baseline *float64) Comparison {
	c := Comparison{Baseline: baseline}
	if current == nil || baseline == nil || !isFinite(*current) || !isFinite(*baseline) {
		c.Direction = Unavailable
		c.DeltaLabel = "n/a"
		return c
	}

	diff := *current - *baseline
	delta := math.Round(diff*10) / 10
	c.Delta = &delta

	switch {
	case diff == 0:
		c.Direction = Unchanged
		c.DeltaLabel = "no change"
		return c
	case (diff > 0 && def.HigherIsBetter) || (diff < 0 && !def.HigherIsBetter):
		c.Direction = Improved
	default:
		c.Direction = Worsened
	}
	c.DeltaLabel = formatDelta(delta, def.IsPercent)
	return c
}

func formatDelta(delta float64, isPercent bool) string {
	sign := "+"
	if delta < 0 {
		sign = "-"
	}
	abs := math.Abs(delta)
	label := sign + strconv.FormatFloat(abs, 'f', -1, 64)
	if !isPercent {
		return label
	}
	if abs == 1 {
		return label + " percentage point"
	}
	return label + " percentage points"
}

func basisLabel(prefix, code string) string {
	if code == "" {
		return prefix
	}
	return fmt.Sprintf("%s (%s)", prefix, code)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
