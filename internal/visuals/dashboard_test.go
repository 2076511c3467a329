package visuals

import (
	"bytes"
	"strings"
	"testing"

	"sheq-kpi/internal/stats"
)

func TestRenderDashboard(t *testing.T) {
	cur := 4.0
	b, _ := stats.FindBreakdown("incidents_by_type")
	d := Dashboard{
		Title: "SHEQ KPIs <Fleet>",
		Summary: stats.Summary{
			Actions:  stats.ActionMetrics{Total: 4, Open: 1, Closed: 3, PercentClosed: 75},
			EvalTime: "2025-06-01T09:00:00Z",
		},
		Trends: stats.TrendReport{
			Period:         "2503",
			PreviousPeriod: "2502",
			LastYearPeriod: "2403",
			KPIs: []stats.KPITrend{{
				Label:      "Actions raised",
				Current:    &cur,
				VsPrevious: stats.Comparison{Direction: stats.Unavailable, DeltaLabel: "n/a"},
				VsLastYear: stats.Comparison{Direction: stats.Unavailable, DeltaLabel: "n/a"},
			}},
		},
		Breakdowns: []stats.BreakdownResult{{Breakdown: b, Buckets: []stats.Bucket{{Category: "Slip", Count: 2}}}},
	}

	var buf bytes.Buffer
	if err := RenderDashboard(&buf, d); err != nil {
		t.Fatalf("RenderDashboard failed: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, "SHEQ KPIs &lt;Fleet&gt;") {
		t.Error("Expected the title to be escaped")
	}
	if !strings.Contains(html, "75%") {
		t.Error("Expected the closed percentage")
	}
	if !strings.Contains(html, `<td class="unavailable">n/a</td>`) {
		t.Errorf("Expected unavailable comparisons to render n/a, got:\n%s", html)
	}
	if !strings.Contains(html, "<h2>Incidents by type</h2>") {
		t.Error("Expected a breakdown chart section")
	}
	if strings.Contains(html, "```") {
		t.Error("Expected markdown fences to be stripped")
	}
}
