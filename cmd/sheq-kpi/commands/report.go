package commands

import (
	"fmt"
	"strings"
	"time"

	"sheq-kpi/internal/record"
	"sheq-kpi/internal/snapshot"
	"sheq-kpi/internal/stats"

	"github.com/spf13/cobra"
)

var (
	filter     stats.Criteria
	evalTime   string
	format     string
	limit      int
	breakdowns []string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline action and incident KPIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, session.Summary())
	},
}

var trendCmd = &cobra.Command{
	Use:   "trend [period]",
	Short: "Compare a period against the previous period and the same period last year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		explicit := ""
		if len(args) == 1 {
			explicit = args[0]
		}
		report := session.Trends(explicit)
		if report.Period == "" {
			return fmt.Errorf("no reporting period found in the data")
		}
		return writeOutput(cmd.OutOrStdout(), format, report)
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Print category frequency breakdowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		if len(breakdowns) == 0 {
			return writeOutput(cmd.OutOrStdout(), format, session.Breakdowns())
		}
		results := make([]stats.BreakdownResult, 0, len(breakdowns))
		for _, id := range breakdowns {
			b, ok := stats.FindBreakdown(id)
			if !ok {
				return fmt.Errorf("unknown breakdown: %s", id)
			}
			results = append(results, session.Breakdown(b))
		}
		return writeOutput(cmd.OutOrStdout(), format, results)
	},
}

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "List overdue actions and incidents with overdue investigations",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		n := limit
		if n <= 0 {
			n = cfg.AttentionLimit
		}
		return writeOutput(cmd.OutOrStdout(), format, session.Attention(n))
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the periods and departments present in the data",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, session.Options())
	},
}

// openSession loads the snapshot once and binds it to the command-line filter.
func openSession(cmd *cobra.Command) (*stats.AnalysisSession, error) {
	var now time.Time
	if strings.TrimSpace(evalTime) != "" {
		t := record.ParseDate(evalTime)
		if t == nil {
			return nil, fmt.Errorf("invalid --now value %q: use YYYY-MM-DD or RFC3339", evalTime)
		}
		now = *t
	}

	doc, err := snapshot.NewLoader(cfg.Data).Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	return stats.NewAnalysisSession(doc.SafetyActions, doc.Incidents, filter, now, kpis), nil
}

func init() {
	for _, c := range []*cobra.Command{summaryCmd, trendCmd, breakdownCmd, attentionCmd, optionsCmd} {
		c.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
		c.Flags().StringVar(&evalTime, "now", "", "evaluation time (YYYY-MM-DD or RFC3339), defaults to the current time")
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{summaryCmd, breakdownCmd, attentionCmd} {
		c.Flags().StringVarP(&filter.Period, "period", "p", "", "reporting period code (YYPP)")
		c.Flags().StringVar(&filter.Start, "start", "", "inclusive start date (YYYY-MM-DD)")
		c.Flags().StringVar(&filter.End, "end", "", "inclusive end date (YYYY-MM-DD)")
		c.Flags().StringVarP(&filter.Department, "dept", "d", "", "department or function")
	}
	trendCmd.Flags().StringVarP(&filter.Department, "dept", "d", "", "department or function")

	breakdownCmd.Flags().StringSliceVarP(&breakdowns, "breakdown", "b", nil, "breakdown ids (default all)")
	attentionCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows per list (default SHEQ_ATTENTION_LIMIT)")
}
