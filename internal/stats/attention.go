package stats

import (
	"time"

	"sheq-kpi/internal/record"
)

// DefaultAttentionLimit caps the needs-attention lists.
const DefaultAttentionLimit = 50

// ActionNeedsAttention reports whether an action is open or overdue, either by status
// or by the upstream overdue flag.
func ActionNeedsAttention(r record.Record) bool {
	st := record.ResolveStatus(r)
	flag, _ := r[record.FieldOverdueCalc].(bool)
	return st.Open || st.OverdueExplicit || flag
}

// IncidentNeedsAttention reports whether an incident is open or has an overdue investigation.
func IncidentNeedsAttention(r record.Record, now time.Time) bool {
	if record.ResolveStatus(r).Open {
		return true
	}
	return IsInvestigationOverdue(r.Date(record.FieldInvestigationDue), r.Date(record.FieldInvestigationComplete), now)
}

// AttentionActions returns up to limit actions needing follow-up, in input order.
// A limit <= 0 means DefaultAttentionLimit.
func AttentionActions(rows []record.Record, limit int) []record.Record {
	return takeWhere(rows, limit, ActionNeedsAttention)
}

// AttentionIncidents returns up to limit incidents needing follow-up, in input order.
func AttentionIncidents(rows []record.Record, limit int, now time.Time) []record.Record {
	return takeWhere(rows, limit, func(r record.Record) bool {
		return IncidentNeedsAttention(r, now)
	})
}

func takeWhere(rows []record.Record, limit int, keep func(record.Record) bool) []record.Record {
	if limit <= 0 {
		limit = DefaultAttentionLimit
	}
	result := make([]record.Record, 0, min(limit, len(rows)))
	for _, r := range rows {
		if len(result) >= limit {
			break
		}
		if keep(r) {
			result = append(result, r)
		}
	}
	return result
}
