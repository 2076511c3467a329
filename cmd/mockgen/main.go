package main

import (
	"flag"
	"fmt"
	"os"
	"sheq-kpi/cmd/mockgen/engine"
	"time"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for the mock KPI document")
	count := flag.Int("count", 300, "Number of safety actions to generate")
	months := flag.Int("months", 13, "Number of monthly periods to cover")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Months:       *months,
		Seed:         *seed,
		Now:          time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d, Months: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, cfg.Months, *outDir)

	doc := engine.Generate(cfg)

	path, err := engine.Save(*outDir, doc)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Wrote %d actions and %d incidents to %s\n", len(doc.SafetyActions), len(doc.Incidents), path)
}
