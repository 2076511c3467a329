package stats

import (
	"time"

	"sheq-kpi/internal/record"
)

// Summary is the pair of headline metric sets for the active filter.
type Summary struct {
	Criteria  Criteria        `json:"criteria" yaml:"criteria"`
	Actions   ActionMetrics   `json:"actions" yaml:"actions"`
	Incidents IncidentMetrics `json:"incidents" yaml:"incidents"`
	EvalTime  string          `json:"evaluatedAt" yaml:"evaluatedAt"`
}

// Attention holds the follow-up lists for the active filter.
type Attention struct {
	Actions   []record.Record `json:"actions" yaml:"actions"`
	Incidents []record.Record `json:"incidents" yaml:"incidents"`
}

// AnalysisSession binds a snapshot, a filter, an evaluation time and a KPI table for
// one filter -> compute -> render cycle. It never mutates the snapshot; a session is
// meant for a single caller and is not safe for concurrent use.
type AnalysisSession struct {
	actions   []record.Record
	incidents []record.Record
	criteria  Criteria
	now       time.Time
	kpis      []KPIDefinition

	// Cached projections
	filteredActions   []record.Record
	filteredIncidents []record.Record
	isFiltered        bool
}

// NewAnalysisSession creates a session. A zero now means time.Now(); nil kpis means DefaultKPIs().
func NewAnalysisSession(actions, incidents []record.Record, criteria Criteria, now time.Time, kpis []KPIDefinition) *AnalysisSession {
	if now.IsZero() {
		now = time.Now()
	}
	if kpis == nil {
		kpis = DefaultKPIs()
	}
	return &AnalysisSession{
		actions:   actions,
		incidents: incidents,
		criteria:  criteria,
		now:       now,
		kpis:      kpis,
	}
}

func (s *AnalysisSession) project() {
	if s.isFiltered {
		return
	}
	s.filteredActions = Filter(s.actions, record.Actions, s.criteria)
	s.filteredIncidents = Filter(s.incidents, record.Incidents, s.criteria)
	s.isFiltered = true
}

// Actions returns the actions passing the session filter.
func (s *AnalysisSession) Actions() []record.Record {
	s.project()
	return s.filteredActions
}

// Incidents returns the incidents passing the session filter.
func (s *AnalysisSession) Incidents() []record.Record {
	s.project()
	return s.filteredIncidents
}

// Criteria returns the session filter.
func (s *AnalysisSession) Criteria() Criteria {
	return s.criteria
}

// Now returns the evaluation time used for time-dependent KPIs.
func (s *AnalysisSession) Now() time.Time {
	return s.now
}

// Summary computes the headline metrics.
func (s *AnalysisSession) Summary() Summary {
	return Summary{
		Criteria:  s.criteria,
		Actions:   CalculateActionMetrics(s.Actions()),
		Incidents: CalculateIncidentMetrics(s.Incidents(), s.now),
		EvalTime:  s.now.Format(time.RFC3339),
	}
}

// Breakdown buckets the filtered records for one standard breakdown.
func (s *AnalysisSession) Breakdown(b Breakdown) BreakdownResult {
	rows := s.Actions()
	if b.Kind == record.Incidents {
		rows = s.Incidents()
	}
	return BreakdownResult{Breakdown: b, Buckets: Bucketize(rows, b.Field, b.AltField)}
}

// Breakdowns computes every standard breakdown.
func (s *AnalysisSession) Breakdowns() []BreakdownResult {
	results := make([]BreakdownResult, 0, len(StandardBreakdowns))
	for _, b := range StandardBreakdowns {
		results = append(results, s.Breakdown(b))
	}
	return results
}

// Attention returns the needs-attention lists, each capped at limit.
func (s *AnalysisSession) Attention(limit int) Attention {
	return Attention{
		Actions:   AttentionActions(s.Actions(), limit),
		Incidents: AttentionIncidents(s.Incidents(), limit, s.now),
	}
}

// Options lists the selectable periods and departments across the whole snapshot.
func (s *AnalysisSession) Options() FilterOptions {
	return DiscoverFilterOptions(s.actions, s.incidents)
}

// TrendPeriod resolves the period to compare: the explicit argument, else the filter's
// period, else the latest period present in the snapshot.
func (s *AnalysisSession) TrendPeriod(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s.criteria.Period != "" {
		return s.criteria.Period
	}
	return LatestPeriod(s.actions, s.incidents)
}

// Trends compares a period against its baselines, honouring only the department filter.
func (s *AnalysisSession) Trends(periodCode string) TrendReport {
	return CalculateTrends(s.actions, s.incidents, s.TrendPeriod(periodCode), s.criteria.Department, s.now, s.kpis)
}
