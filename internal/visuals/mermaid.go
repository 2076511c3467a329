package visuals

import (
	"fmt"
	"math"
	"strings"

	"sheq-kpi/internal/stats"
)

// MaxBreakdownBars caps the categories drawn in a breakdown chart.
const MaxBreakdownBars = 12

// GenerateBreakdownChart creates a Mermaid bar chart for a category breakdown.
// Only the top MaxBreakdownBars buckets are drawn.
func GenerateBreakdownChart(result stats.BreakdownResult) string {
	if len(result.Buckets) == 0 {
		return ""
	}

	limit := len(result.Buckets)
	if limit > MaxBreakdownBars {
		limit = MaxBreakdownBars
	}

	var labels []string
	var values []string
	maxVal := 0

	for _, b := range result.Buckets[:limit] {
		labels = append(labels, quote(b.Category))
		values = append(values, fmt.Sprintf("%d", b.Count))
		if b.Count > maxVal {
			maxVal = b.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(result.Breakdown.Title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Count\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateActionStatusPie creates a Mermaid pie chart of open versus closed actions.
func GenerateActionStatusPie(m stats.ActionMetrics) string {
	if m.Total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Safety Actions by Status\n")
	sb.WriteString(fmt.Sprintf("    \"Closed\" : %d\n", m.Closed))
	sb.WriteString(fmt.Sprintf("    \"Open (on track)\" : %d\n", max(m.Open-m.Overdue, 0)))
	sb.WriteString(fmt.Sprintf("    \"Open (overdue)\" : %d\n", m.Overdue))
	if other := m.Total - m.Open - m.Closed; other > 0 {
		sb.WriteString(fmt.Sprintf("    \"Other\" : %d\n", other))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateTrendChart creates a Mermaid bar chart of one KPI across last year, the
// previous period and the current period. Missing values are drawn as 0.
func GenerateTrendChart(report stats.TrendReport, kpiID string) string {
	trend, ok := report.Lookup(kpiID)
	if !ok || trend.Current == nil {
		return ""
	}

	points := []struct {
		label string
		value *float64
	}{
		{report.LastYearPeriod, trend.VsLastYear.Baseline},
		{report.PreviousPeriod, trend.VsPrevious.Baseline},
		{report.Period, trend.Current},
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for _, p := range points {
		v := 0.0
		if p.value != nil {
			v = *p.value
		}
		labels = append(labels, quote(p.label))
		values = append(values, fmt.Sprintf("%.1f", v))
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(trend.Label)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %d\n", quote(trend.Label), int(math.Ceil(math.Max(1, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// quote wraps a label for mermaid, which has no escape for embedded double quotes.
func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "'") + "\""
}
