package config

import (
	"fmt"
	"os"

	"sheq-kpi/internal/stats"

	"gopkg.in/yaml.v3"
)

// KPIFile is the on-disk shape of a KPI directionality override file:
//
//	kpis:
//	  sa_total:
//	    higher_is_better: false
//	  inc_total:
//	    label: "Reported incidents"
type KPIFile struct {
	KPIs map[string]stats.KPIOverride `yaml:"kpis"`
}

// LoadKPIs returns the KPI table with any overrides from path applied.
// An empty path yields the built-in table.
func LoadKPIs(path string) ([]stats.KPIDefinition, error) {
	defaults := stats.DefaultKPIs()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading KPI config: %w", err)
	}

	var file KPIFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing KPI config: %w", err)
	}

	known := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		known[d.ID] = true
	}
	for id := range file.KPIs {
		if !known[id] {
			return nil, fmt.Errorf("parsing KPI config: unknown KPI %q", id)
		}
	}

	return stats.ApplyKPIOverrides(defaults, file.KPIs), nil
}
