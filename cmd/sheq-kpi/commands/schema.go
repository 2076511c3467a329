package commands

import (
	"fmt"
	"sort"
	"strings"

	"sheq-kpi/internal/mcp"
	"sheq-kpi/internal/stats"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
)

// schemaFor maps a report name to its JSON Schema generator.
var schemaFor = map[string]func() (*jsonschema.Schema, error){
	"summary":   func() (*jsonschema.Schema, error) { return jsonschema.For[stats.Summary](nil) },
	"trend":     func() (*jsonschema.Schema, error) { return jsonschema.For[stats.TrendReport](nil) },
	"breakdown": func() (*jsonschema.Schema, error) { return jsonschema.For[stats.BreakdownResult](nil) },
	"attention": func() (*jsonschema.Schema, error) { return jsonschema.For[stats.Attention](nil) },
	"options":   func() (*jsonschema.Schema, error) { return jsonschema.For[stats.FilterOptions](nil) },
	"filter":    func() (*jsonschema.Schema, error) { return jsonschema.For[mcp.FilterInput](nil) },
}

func schemaNames() []string {
	names := make([]string, 0, len(schemaFor))
	for n := range schemaFor {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var schemaCmd = &cobra.Command{
	Use:   "schema <report>",
	Short: "Print the JSON Schema of a report",
	Long:  "Print the JSON Schema of a report. Reports: " + strings.Join(schemaNames(), ", "),
	Args:  cobra.ExactArgs(1),
	// Schemas need neither configuration nor data.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, ok := schemaFor[args[0]]
		if !ok {
			return fmt.Errorf("unknown report %q: available reports are %s", args[0], strings.Join(schemaNames(), ", "))
		}
		schema, err := gen()
		if err != nil {
			return fmt.Errorf("failed to build schema: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), "json", schema)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
