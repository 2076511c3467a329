package commands

import (
	"context"
	"fmt"

	"sheq-kpi/internal/config"
	"sheq-kpi/internal/logging"
	"sheq-kpi/internal/mcp"
	"sheq-kpi/internal/snapshot"
	"sheq-kpi/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	kpis    []stats.KPIDefinition

	source string
)

var rootCmd = &cobra.Command{
	Use:   "sheq-kpi",
	Short: "SHEQ-KPI is an MCP Server for safety action and incident KPIs",
	Long: `A specialized MCP Server that computes headline SHEQ KPIs, period-over-period trends,
category breakdowns and follow-up lists from an exported safety actions and incidents snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return err
		}

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if source != "" {
			cfg.Data.Source = source
		}

		kpis, err = config.LoadKPIs(cfg.KPIConfigPath)
		if err != nil {
			return err
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("source", cfg.Data.Source).
			Msg("SHEQ-KPI starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(cfg, snapshot.NewLoader(cfg.Data), kpis)
		return server.Run(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&source, "source", "s", "", "KPI document path or URL (overrides SHEQ_DATA_SOURCE)")
}
