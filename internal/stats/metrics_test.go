package stats

import (
	"testing"
	"time"

	"sheq-kpi/internal/record"
)

var evalTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestCalculateActionMetrics_Empty(t *testing.T) {
	m := CalculateActionMetrics(nil)
	if m != (ActionMetrics{}) {
		t.Errorf("Expected zero metrics for empty collection, got %+v", m)
	}
}

func TestCalculateActionMetrics_Counts(t *testing.T) {
	rows := []record.Record{
		{"Status": "Open"},
		{"Status": "open ", "Is Overdue (calc)": true},
		{"Status": "Closed"},
		{"Status": "Overdue"},
		{"Status": "Closed", "Is Overdue (calc)": "true"},
		{"Status": "Unknown"},
	}

	m := CalculateActionMetrics(rows)

	if m.Total != 6 {
		t.Errorf("Expected 6 total, got %d", m.Total)
	}
	if m.Open != 2 {
		t.Errorf("Expected 2 open, got %d", m.Open)
	}
	if m.Closed != 2 {
		t.Errorf("Expected 2 closed, got %d", m.Closed)
	}
	// Only the explicit status and the literal boolean flag count; the string "true" does not.
	if m.Overdue != 2 {
		t.Errorf("Expected 2 overdue, got %d", m.Overdue)
	}
	if m.PercentClosed != 33 {
		t.Errorf("Expected 33%% closed, got %d", m.PercentClosed)
	}
}

func TestCalculateActionMetrics_SLA(t *testing.T) {
	rows := []record.Record{
		{"Action Completion Target Date": "2025-04-10", "Action Completed": "2025-04-05"},
		{"Action Completion Target Date": "2025-04-10", "Action Completed": "2025-04-10"},
		{"Action Completion Target Date": "2025-04-10", "Action Completed": "2025-04-09"},
		{"Action Completion Target Date": "2025-04-10", "Action Completed": "2025-04-20"},
		{"Action Completed": "2025-04-20"}, // no target: outside the denominator
	}

	m := CalculateActionMetrics(rows)
	if m.SLAPercent != 75 {
		t.Errorf("Expected 75%% SLA, got %d", m.SLAPercent)
	}
}

func TestCalculateActionMetrics_SLANotCompleted(t *testing.T) {
	rows := []record.Record{
		{"Action Completion Target Date": "2025-04-10"},
		{"Action Completion Target Date": "2025-04-10", "Action Completed": "2025-04-01"},
	}
	if m := CalculateActionMetrics(rows); m.SLAPercent != 50 {
		t.Errorf("Expected 50%% SLA, got %d", m.SLAPercent)
	}
}

func TestCalculateActionMetrics_AvgDays(t *testing.T) {
	rows := []record.Record{
		// precomputed number wins over the derived span
		{"Date Action Raised": "2025-04-01", "Action Completed": "2025-04-30", "Number of days taken to close": 4.0},
		// derived from raised -> completed
		{"Date Action Raised": "2025-04-01", "Action Completed": "2025-04-08"},
		// precomputed value is text: fall back to derived span
		{"Date Action Raised": "2025-04-01", "Action Completed": "2025-04-04", "Number of days taken to close": "n/a"},
		// target only, no completion: ignored
		{"Date Action Raised": "2025-04-01", "Action Completion Target Date": "2025-04-02", "Number of days taken to close": 100.0},
		// completed but no raised date and no number: no qualifying value
		{"Action Completed": "2025-04-04"},
	}

	m := CalculateActionMetrics(rows)
	// (4 + 7 + 3) / 3 = 4.67 -> 5
	if m.AvgDays != 5 {
		t.Errorf("Expected avg 5 days, got %d", m.AvgDays)
	}
	if m.MedianDays != 4 {
		t.Errorf("Expected median 4 days, got %v", m.MedianDays)
	}
}

func TestCalculateActionMetrics_NegativeDaysAllowed(t *testing.T) {
	rows := []record.Record{
		{"Date Action Raised": "2025-04-10", "Action Completed": "2025-04-07"},
	}
	if m := CalculateActionMetrics(rows); m.AvgDays != -3 {
		t.Errorf("Expected -3 days, got %d", m.AvgDays)
	}
}

func TestCalculateIncidentMetrics(t *testing.T) {
	rows := []record.Record{
		// overdue: due passed, never completed
		{"Status": "Open", "Investigation Due": "2025-05-01", "RIDDOR": "Yes", "Total Number of days Lost": 3.0},
		// overdue: completed after due
		{"Status": "Closed", "Investigation Due": "2025-05-01", "Investigation Completion date": "2025-05-03", "Total Number of days Lost": "2"},
		// on time
		{"Status": "Closed", "Investigation Due": "2025-05-01", "Investigation Completion date": "2025-04-28", "RIDDOR/SMIS": "No", "Total Number of days Lost": "n/a"},
		// due in the future: not overdue, counts in SLA denominator
		{"Status": "Open", "Investigation Due": "2025-07-01", "RIDDOR Reportable": "1"},
		// no due date
		{"Status": "Other", "Reportable": true},
	}

	m := CalculateIncidentMetrics(rows, evalTime)

	if m.Total != 5 || m.Open != 2 || m.Closed != 2 {
		t.Errorf("Unexpected status counts: %+v", m)
	}
	if m.Overdue != 2 {
		t.Errorf("Expected 2 overdue, got %d", m.Overdue)
	}
	if m.Riddor != 3 {
		t.Errorf("Expected 3 reportable, got %d", m.Riddor)
	}
	if m.DaysLost != 5 {
		t.Errorf("Expected 5 days lost, got %v", m.DaysLost)
	}
	// 1 hit out of 4 with a due date
	if m.SLAPercent != 25 {
		t.Errorf("Expected 25%% SLA, got %d", m.SLAPercent)
	}
}

func TestCalculateIncidentMetrics_Empty(t *testing.T) {
	m := CalculateIncidentMetrics([]record.Record{}, evalTime)
	if m != (IncidentMetrics{}) {
		t.Errorf("Expected zero metrics, got %+v", m)
	}
}

func TestIsInvestigationOverdue_DependsOnNow(t *testing.T) {
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	if IsInvestigationOverdue(&due, nil, due.AddDate(0, 0, -1)) {
		t.Error("Expected not overdue before the due date")
	}
	if IsInvestigationOverdue(&due, nil, due) {
		t.Error("Expected not overdue exactly at the due date")
	}
	if !IsInvestigationOverdue(&due, nil, due.AddDate(0, 0, 1)) {
		t.Error("Expected overdue after the due date")
	}
	if IsInvestigationOverdue(nil, nil, due) {
		t.Error("Expected not overdue without a due date")
	}
}
