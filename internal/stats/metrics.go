package stats

import (
	"time"

	"sheq-kpi/internal/record"
)

// ActionMetrics are the headline KPIs for corrective actions.
// Percentages are integers in 0..100 and averages are whole days.
type ActionMetrics struct {
	Total         int     `json:"total" yaml:"total"`
	Open          int     `json:"open" yaml:"open"`
	Closed        int     `json:"closed" yaml:"closed"`
	Overdue       int     `json:"overdue" yaml:"overdue"`
	PercentClosed int     `json:"pctClosed" yaml:"pctClosed"`
	AvgDays       int     `json:"avgDays" yaml:"avgDays"`
	MedianDays    float64 `json:"medianDays" yaml:"medianDays"`
	SLAPercent    int     `json:"slaPct" yaml:"slaPct"`
}

// IncidentMetrics are the headline KPIs for incidents.
type IncidentMetrics struct {
	Total      int     `json:"total" yaml:"total"`
	Open       int     `json:"open" yaml:"open"`
	Closed     int     `json:"closed" yaml:"closed"`
	Overdue    int     `json:"overdue" yaml:"overdue"`
	Riddor     int     `json:"riddor" yaml:"riddor"`
	DaysLost   float64 `json:"daysLost" yaml:"daysLost"`
	SLAPercent int     `json:"slaPct" yaml:"slaPct"`
}

// CalculateActionMetrics reduces a filtered action collection to its KPIs.
func CalculateActionMetrics(rows []record.Record) ActionMetrics {
	m := ActionMetrics{Total: len(rows)}

	var days []float64
	slaHit, slaDen := 0, 0

	for _, r := range rows {
		// 1. Status counts
		st := record.ResolveStatus(r)
		if st.Closed {
			m.Closed++
		} else if st.Open {
			m.Open++
		}

		// 2. Overdue: explicit status, or the upstream flag being a literal boolean true
		if flag, ok := r[record.FieldOverdueCalc].(bool); st.OverdueExplicit || (ok && flag) {
			m.Overdue++
		}

		done := r.Date(record.FieldCompleted)
		target := r.Date(record.FieldTargetDate)

		// 3. Days to close, only for completed actions
		if done != nil {
			if n, ok := record.AsNumber(r[record.FieldDaysToClose]); ok {
				days = append(days, n)
			} else if d, ok := record.DaysBetween(r.Date(record.FieldDateRaised), done); ok {
				days = append(days, float64(d))
			}
		}

		// 4. SLA: completed on or before target
		if target != nil {
			slaDen++
			if done != nil && !done.After(*target) {
				slaHit++
			}
		}
	}

	m.PercentClosed = Percent(m.Closed, m.Total)
	m.AvgDays = RoundedMean(days)
	m.MedianDays = CalculateMedianContinuous(days)
	m.SLAPercent = Percent(slaHit, slaDen)
	return m
}

// CalculateIncidentMetrics reduces a filtered incident collection to its KPIs.
// Overdue investigations are judged against now, so results depend on the evaluation time.
func CalculateIncidentMetrics(rows []record.Record, now time.Time) IncidentMetrics {
	m := IncidentMetrics{Total: len(rows)}
	slaHit, slaDen := 0, 0

	for _, r := range rows {
		st := record.ResolveStatus(r)
		if st.Closed {
			m.Closed++
		} else if st.Open {
			m.Open++
		}

		due := r.Date(record.FieldInvestigationDue)
		comp := r.Date(record.FieldInvestigationComplete)
		if IsInvestigationOverdue(due, comp, now) {
			m.Overdue++
		}

		if record.ResolveReportable(r) {
			m.Riddor++
		}

		m.DaysLost += record.CoerceNumber(r[record.FieldDaysLost])

		if due != nil {
			slaDen++
			if comp != nil && !comp.After(*due) {
				slaHit++
			}
		}
	}

	m.SLAPercent = Percent(slaHit, slaDen)
	return m
}

// IsInvestigationOverdue reports whether the due date has passed and the investigation
// was either never completed or completed late.
func IsInvestigationOverdue(due, completed *time.Time, now time.Time) bool {
	if due == nil || !due.Before(now) {
		return false
	}
	return completed == nil || completed.After(*due)
}
