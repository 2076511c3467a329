package mcp

import (
	"context"
	"fmt"

	"sheq-kpi/internal/snapshot"
	"sheq-kpi/internal/stats"
	"sheq-kpi/internal/visuals"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilterInput is the filter shared by the snapshot-level tools.
type FilterInput struct {
	Period     string `json:"period,omitempty" jsonschema:"Reporting period code YYPP, e.g. 2503"`
	Start      string `json:"start,omitempty" jsonschema:"Inclusive start date, YYYY-MM-DD"`
	End        string `json:"end,omitempty" jsonschema:"Inclusive end date, YYYY-MM-DD"`
	Department string `json:"department,omitempty" jsonschema:"Exact department or function name"`
	Now        string `json:"now,omitempty" jsonschema:"Evaluation time (YYYY-MM-DD or RFC3339). Defaults to the current time"`
}

func (in FilterInput) criteria() stats.Criteria {
	return stats.Criteria{Period: in.Period, Start: in.Start, End: in.End, Department: in.Department}
}

type SummaryOutput struct {
	Summary  stats.Summary     `json:"summary"`
	Data     snapshot.Info     `json:"data"`
	Guidance []string          `json:"_guidance,omitempty"`
	Visuals  map[string]string `json:"_visuals,omitempty"`
}

func (s *Server) handleGetSummary(ctx context.Context, _ *mcp.CallToolRequest, in FilterInput) (*mcp.CallToolResult, SummaryOutput, error) {
	session, err := s.session(ctx, in.criteria(), in.Now)
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	out := SummaryOutput{
		Summary: session.Summary(),
		Data:    s.store.Info(),
		Guidance: []string{
			"Percentages are whole numbers in 0..100; 0 means the collection was empty, not that performance was 0%.",
			"Overdue investigations depend on the evaluation time; pass 'now' to reproduce a past report.",
		},
	}
	if s.enableMermaidCharts {
		out.Visuals = map[string]string{"action_status_pie": visuals.GenerateActionStatusPie(out.Summary.Actions)}
	}
	return nil, out, nil
}

type TrendInput struct {
	Period     string   `json:"period,omitempty" jsonschema:"Reporting period code YYPP. Defaults to the filter period or the latest period in the data"`
	Department string   `json:"department,omitempty" jsonschema:"Exact department or function name"`
	Now        string   `json:"now,omitempty" jsonschema:"Evaluation time (YYYY-MM-DD or RFC3339). Defaults to the current time"`
	Charts     []string `json:"charts,omitempty" jsonschema:"KPI ids to chart when charts are enabled. Defaults to sa_total and inc_total"`
}

type TrendOutput struct {
	Report   stats.TrendReport `json:"report"`
	Guidance []string          `json:"_guidance,omitempty"`
	Visuals  map[string]string `json:"_visuals,omitempty"`
}

func (s *Server) handleGetTrends(ctx context.Context, _ *mcp.CallToolRequest, in TrendInput) (*mcp.CallToolResult, TrendOutput, error) {
	session, err := s.session(ctx, stats.Criteria{Department: in.Department}, in.Now)
	if err != nil {
		return nil, TrendOutput{}, err
	}

	report := session.Trends(in.Period)
	if report.Period == "" {
		return nil, TrendOutput{}, fmt.Errorf("no reporting period found in the data; pass 'period' explicitly")
	}

	out := TrendOutput{
		Report: report,
		Guidance: []string{
			"Trends compare exact period slices only; the date-range filter never applies here.",
			"A comparison is 'unavailable' when either period holds no records of the KPI's kind.",
		},
	}
	if s.enableMermaidCharts {
		ids := in.Charts
		if len(ids) == 0 {
			ids = []string{"sa_total", "inc_total"}
		}
		out.Visuals = make(map[string]string, len(ids))
		for _, id := range ids {
			if chart := visuals.GenerateTrendChart(report, id); chart != "" {
				out.Visuals["trend_"+id] = chart
			}
		}
	}
	return nil, out, nil
}

type BreakdownInput struct {
	Period     string   `json:"period,omitempty" jsonschema:"Reporting period code YYPP, e.g. 2503"`
	Start      string   `json:"start,omitempty" jsonschema:"Inclusive start date, YYYY-MM-DD"`
	End        string   `json:"end,omitempty" jsonschema:"Inclusive end date, YYYY-MM-DD"`
	Department string   `json:"department,omitempty" jsonschema:"Exact department or function name"`
	Breakdowns []string `json:"breakdowns,omitempty" jsonschema:"Breakdown ids. Defaults to all standard breakdowns"`
}

type BreakdownOutput struct {
	Breakdowns []stats.BreakdownResult `json:"breakdowns"`
	Visuals    map[string]string       `json:"_visuals,omitempty"`
}

func (s *Server) handleGetBreakdown(ctx context.Context, _ *mcp.CallToolRequest, in BreakdownInput) (*mcp.CallToolResult, BreakdownOutput, error) {
	wanted, err := resolveBreakdowns(in.Breakdowns)
	if err != nil {
		return nil, BreakdownOutput{}, err
	}
	criteria := stats.Criteria{Period: in.Period, Start: in.Start, End: in.End, Department: in.Department}
	session, err := s.session(ctx, criteria, "")
	if err != nil {
		return nil, BreakdownOutput{}, err
	}

	out := BreakdownOutput{Breakdowns: make([]stats.BreakdownResult, 0, len(wanted))}
	for _, b := range wanted {
		out.Breakdowns = append(out.Breakdowns, session.Breakdown(b))
	}
	if s.enableMermaidCharts {
		out.Visuals = make(map[string]string, len(out.Breakdowns))
		for _, r := range out.Breakdowns {
			if chart := visuals.GenerateBreakdownChart(r); chart != "" {
				out.Visuals[r.Breakdown.ID] = chart
			}
		}
	}
	return nil, out, nil
}

type AttentionInput struct {
	Period     string `json:"period,omitempty" jsonschema:"Reporting period code YYPP, e.g. 2503"`
	Start      string `json:"start,omitempty" jsonschema:"Inclusive start date, YYYY-MM-DD"`
	End        string `json:"end,omitempty" jsonschema:"Inclusive end date, YYYY-MM-DD"`
	Department string `json:"department,omitempty" jsonschema:"Exact department or function name"`
	Now        string `json:"now,omitempty" jsonschema:"Evaluation time (YYYY-MM-DD or RFC3339). Defaults to the current time"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum rows per list. Capped by the server limit"`
}

type AttentionOutput struct {
	Attention stats.Attention `json:"attention"`
	Limit     int             `json:"limit"`
}

func (s *Server) handleGetAttention(ctx context.Context, _ *mcp.CallToolRequest, in AttentionInput) (*mcp.CallToolResult, AttentionOutput, error) {
	criteria := stats.Criteria{Period: in.Period, Start: in.Start, End: in.End, Department: in.Department}
	session, err := s.session(ctx, criteria, in.Now)
	if err != nil {
		return nil, AttentionOutput{}, err
	}
	limit := s.clampLimit(in.Limit)
	return nil, AttentionOutput{Attention: session.Attention(limit), Limit: limit}, nil
}

type OptionsInput struct{}

type OptionsOutput struct {
	Options    stats.FilterOptions   `json:"options"`
	Latest     string                `json:"latestPeriod,omitempty"`
	Breakdowns []stats.Breakdown     `json:"breakdowns"`
	KPIs       []stats.KPIDefinition `json:"kpis"`
}

func (s *Server) handleListOptions(ctx context.Context, _ *mcp.CallToolRequest, _ OptionsInput) (*mcp.CallToolResult, OptionsOutput, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return nil, OptionsOutput{}, err
	}
	return nil, OptionsOutput{
		Options:    stats.DiscoverFilterOptions(doc.SafetyActions, doc.Incidents),
		Latest:     stats.LatestPeriod(doc.SafetyActions, doc.Incidents),
		Breakdowns: stats.StandardBreakdowns,
		KPIs:       s.kpis,
	}, nil
}

type ReloadInput struct{}

type ReloadOutput struct {
	Data snapshot.Info `json:"data"`
}

func (s *Server) handleReload(ctx context.Context, _ *mcp.CallToolRequest, _ ReloadInput) (*mcp.CallToolResult, ReloadOutput, error) {
	if _, err := s.reload(ctx); err != nil {
		return nil, ReloadOutput{}, fmt.Errorf("reload failed: %w", err)
	}
	return nil, ReloadOutput{Data: s.store.Info()}, nil
}
