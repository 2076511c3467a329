package visuals

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"sheq-kpi/internal/stats"
)

// Dashboard is everything rendered on the HTML KPI page.
type Dashboard struct {
	Title       string
	GeneratedAt string
	Summary     stats.Summary
	Trends      stats.TrendReport
	Breakdowns  []stats.BreakdownResult
	Attention   stats.Attention
}

type dashboardChart struct {
	Title string
	Body  string
}

type dashboardView struct {
	Dashboard
	StatusChart string
	Charts      []dashboardChart
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"value": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%g", *v)
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"></script>
<script>mermaid.initialize({ startOnLoad: true });</script>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.improved { color: #1a7f37; }
.worsened { color: #cf222e; }
.unchanged, .unavailable { color: #6e7781; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Evaluated at {{.Summary.EvalTime}}. Generated {{.GeneratedAt}}.</p>

<h2>Safety actions</h2>
<table>
<tr><th>Total</th><th>Open</th><th>Closed</th><th>Overdue</th><th>% closed</th><th>Avg days</th><th>Within target</th></tr>
{{with .Summary.Actions}}<tr><td>{{.Total}}</td><td>{{.Open}}</td><td>{{.Closed}}</td><td>{{.Overdue}}</td><td>{{.PercentClosed}}%</td><td>{{.AvgDays}}</td><td>{{.SLAPercent}}%</td></tr>{{end}}
</table>
{{if .StatusChart}}<pre class="mermaid">{{.StatusChart}}</pre>{{end}}

<h2>Incidents</h2>
<table>
<tr><th>Total</th><th>Open</th><th>Closed</th><th>Overdue</th><th>RIDDOR</th><th>Days lost</th><th>On time</th></tr>
{{with .Summary.Incidents}}<tr><td>{{.Total}}</td><td>{{.Open}}</td><td>{{.Closed}}</td><td>{{.Overdue}}</td><td>{{.Riddor}}</td><td>{{.DaysLost}}</td><td>{{.SLAPercent}}%</td></tr>{{end}}
</table>

{{if .Trends.Period}}
<h2>Period {{.Trends.Period}}</h2>
<table>
<tr><th>KPI</th><th>Current</th><th>{{.Trends.PreviousPeriod}}</th><th>Change</th><th>{{.Trends.LastYearPeriod}}</th><th>Change</th></tr>
{{range .Trends.KPIs}}<tr>
<td>{{.Label}}</td><td>{{value .Current}}</td>
<td>{{value .VsPrevious.Baseline}}</td><td class="{{.VsPrevious.Direction}}">{{.VsPrevious.DeltaLabel}}</td>
<td>{{value .VsLastYear.Baseline}}</td><td class="{{.VsLastYear.Direction}}">{{.VsLastYear.DeltaLabel}}</td>
</tr>
{{end}}</table>
{{end}}

{{range .Charts}}<h2>{{.Title}}</h2>
<pre class="mermaid">{{.Body}}</pre>
{{end}}

<h2>Needs attention</h2>
<p>{{len .Attention.Actions}} actions and {{len .Attention.Incidents}} incidents need follow-up.</p>
</body>
</html>
`))

// RenderDashboard writes a self-contained HTML KPI page.
func RenderDashboard(w io.Writer, d Dashboard) error {
	view := dashboardView{
		Dashboard:   d,
		StatusChart: unfence(GenerateActionStatusPie(d.Summary.Actions)),
	}
	for _, b := range d.Breakdowns {
		if chart := GenerateBreakdownChart(b); chart != "" {
			view.Charts = append(view.Charts, dashboardChart{Title: b.Breakdown.Title, Body: unfence(chart)})
		}
	}
	if err := dashboardTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// unfence strips the markdown code fence from a mermaid block.
func unfence(chart string) string {
	chart = strings.TrimPrefix(chart, "```mermaid\n")
	return strings.TrimSuffix(chart, "```")
}
