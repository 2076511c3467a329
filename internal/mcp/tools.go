package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "get_kpi_summary",
		Description: "Headline SHEQ KPIs for safety actions and incidents (totals, open/closed, overdue, % closed, " +
			"average days to close, SLA %, RIDDOR count, days lost). Optional filters: reporting period (YYPP), " +
			"inclusive date range and department/function.",
	}, s.handleGetSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_kpi_trends",
		Description: "Compare every KPI for a reporting period against the previous period and the same period last year. " +
			"Each comparison is judged improved, worsened, unchanged or unavailable according to the KPI's direction. " +
			"Defaults to the latest period present in the data.",
	}, s.handleGetTrends)

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_category_breakdown",
		Description: "Frequency breakdowns of actions by type and department, and incidents by type and function, " +
			"sorted by count descending. Accepts the same filters as get_kpi_summary.",
	}, s.handleGetBreakdown)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_attention_items",
		Description: "List overdue safety actions and open incidents whose investigation is overdue, in snapshot order.",
	}, s.handleGetAttention)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_filter_options",
		Description: "List the reporting periods and departments present in the data, plus the available breakdowns and KPI definitions.",
	}, s.handleListOptions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reload_data",
		Description: "Reload the KPI snapshot from its configured source.",
	}, s.handleReload)
}
