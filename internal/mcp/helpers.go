package mcp

import (
	"fmt"
	"strings"
	"time"

	"sheq-kpi/internal/record"
	"sheq-kpi/internal/stats"
)

// evaluationTime resolves the "now" argument. Blank means the server clock.
func (s *Server) evaluationTime(now string) (time.Time, error) {
	if strings.TrimSpace(now) == "" {
		return s.clock(), nil
	}
	t := record.ParseDate(now)
	if t == nil {
		return time.Time{}, fmt.Errorf("invalid evaluation time %q: use YYYY-MM-DD or RFC3339", now)
	}
	return *t, nil
}

// resolveBreakdowns maps requested IDs to standard breakdowns. No IDs means all of them.
func resolveBreakdowns(ids []string) ([]stats.Breakdown, error) {
	if len(ids) == 0 {
		return stats.StandardBreakdowns, nil
	}
	out := make([]stats.Breakdown, 0, len(ids))
	for _, id := range ids {
		b, ok := stats.FindBreakdown(strings.TrimSpace(id))
		if !ok {
			return nil, fmt.Errorf("unknown breakdown: %s. Available breakdowns: %s", id, strings.Join(breakdownIDs(), ", "))
		}
		out = append(out, b)
	}
	return out, nil
}

func breakdownIDs() []string {
	ids := make([]string, 0, len(stats.StandardBreakdowns))
	for _, b := range stats.StandardBreakdowns {
		ids = append(ids, b.ID)
	}
	return ids
}

// clampLimit bounds a requested list size by the configured maximum.
func (s *Server) clampLimit(requested int) int {
	if requested <= 0 || requested > s.attentionLimit {
		return s.attentionLimit
	}
	return requested
}
