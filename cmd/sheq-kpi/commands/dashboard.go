package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sheq-kpi/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	dashboardOut  string
	dashboardOpen bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the KPI dashboard as an HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}

		trends := session.Trends("")
		title := "SHEQ KPI Dashboard"
		if trends.Period != "" {
			title += " " + trends.Period
		}
		if filter.Department != "" {
			title += " (" + filter.Department + ")"
		}

		path := dashboardOut
		if path == "" {
			path = filepath.Join(cfg.DataPath, "reports", fmt.Sprintf("kpi-dashboard-%s.html", time.Now().Format("20060102-150405")))
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create dashboard file: %w", err)
		}
		defer f.Close()

		err = visuals.RenderDashboard(f, visuals.Dashboard{
			Title:       title,
			GeneratedAt: time.Now().Format(time.RFC3339),
			Summary:     session.Summary(),
			Trends:      trends,
			Breakdowns:  session.Breakdowns(),
			Attention:   session.Attention(cfg.AttentionLimit),
		})
		if err != nil {
			return err
		}

		log.Info().Str("path", path).Msg("Dashboard written")
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if dashboardOpen {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Msg("Failed to open dashboard in browser")
			}
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&evalTime, "now", "", "evaluation time (YYYY-MM-DD or RFC3339), defaults to the current time")
	dashboardCmd.Flags().StringVarP(&filter.Period, "period", "p", "", "reporting period code (YYPP)")
	dashboardCmd.Flags().StringVar(&filter.Start, "start", "", "inclusive start date (YYYY-MM-DD)")
	dashboardCmd.Flags().StringVar(&filter.End, "end", "", "inclusive end date (YYYY-MM-DD)")
	dashboardCmd.Flags().StringVarP(&filter.Department, "dept", "d", "", "department or function")
	dashboardCmd.Flags().StringVarP(&dashboardOut, "out", "o", "", "output file (default <DATA_PATH>/reports/kpi-dashboard-<time>.html)")
	dashboardCmd.Flags().BoolVar(&dashboardOpen, "open", false, "open the dashboard in the default browser")
	rootCmd.AddCommand(dashboardCmd)
}
