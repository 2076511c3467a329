package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"sheq-kpi/internal/period"
	"sheq-kpi/internal/record"
	"sheq-kpi/internal/snapshot"
)

type GeneratorConfig struct {
	Scenario     string
	Distribution string // "uniform" or "weibull"
	Count        int    // safety actions; incidents are a third of this
	Months       int
	Seed         int64
	Now          time.Time
}

var (
	departments   = []string{"Fleet", "Depot", "Operations", "Engineering", "Customer Services"}
	actionTypes   = []string{"Corrective", "Preventive", "Improvement", "Training"}
	incidentTypes = []string{"Slip/Trip", "Manual Handling", "Vehicle Collision", "Near Miss", "Assault", "Fire Alarm"}
	locations     = []string{"North Depot", "South Depot", "Head Office", "On Route"}
)

// Generate produces a synthetic KPI document with records spread evenly over the last
// cfg.Months calendar months. The same seed always yields the same document.
func Generate(cfg GeneratorConfig) *snapshot.Document {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Months <= 0 {
		cfg.Months = 13
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := cfg.Now.AddDate(0, -cfg.Months, 0)
	span := cfg.Now.Sub(start)

	doc := &snapshot.Document{
		SafetyActions: make([]record.Record, 0, cfg.Count),
		Incidents:     make([]record.Record, 0, cfg.Count/3),
		Meta: map[string]any{
			"generator": "mockgen",
			"scenario":  cfg.Scenario,
			"generated": cfg.Now.UTC().Format(time.RFC3339),
		},
	}

	for i := 0; i < cfg.Count; i++ {
		ratio := float64(i) / math.Max(1, float64(cfg.Count))

		// 1. Arrival, spread evenly so every period carries records
		raised := start.Add(time.Duration(ratio * float64(span))).Truncate(24 * time.Hour)
		target := raised.AddDate(0, 0, 28)

		// 2. Sample days to close
		days := sampleDays(rng, cfg, ratio)
		done := raised.Add(time.Duration(days*24) * time.Hour)

		dept := departments[rng.Intn(len(departments))]
		r := record.Record{
			record.FieldPeriodRaised:    periodOf(raised),
			record.FieldDateRaised:      raised.Format("2006-01-02"),
			record.FieldDept:            dept,
			record.FieldActionType:      actionTypes[rng.Intn(len(actionTypes))],
			record.FieldActionOwner:     fmt.Sprintf("Owner %d", rng.Intn(12)+1),
			record.FieldTargetDate:      target.Format("2006-01-02"),
			record.FieldActionStatement: fmt.Sprintf("Action %d", i+1),
		}
		if rng.Float64() < 0.5 {
			r[record.FieldFunction] = dept
		}

		// 3. Status relative to now
		if done.Before(cfg.Now) {
			r[record.FieldStatus] = "Closed"
			r[record.FieldCompleted] = done.Format("2006-01-02")
			r[record.FieldDaysToClose] = math.Round(days)
			r[record.FieldOverdueCalc] = false
		} else {
			r[record.FieldStatus] = "Open"
			r[record.FieldOverdueCalc] = target.Before(cfg.Now)
		}
		doc.SafetyActions = append(doc.SafetyActions, r)
	}

	incidents := cfg.Count / 3
	for i := 0; i < incidents; i++ {
		ratio := float64(i) / math.Max(1, float64(incidents))
		occurred := start.Add(time.Duration(ratio * float64(span))).Truncate(24 * time.Hour)
		due := occurred.AddDate(0, 0, 14)
		investigated := occurred.Add(time.Duration(sampleDays(rng, cfg, ratio)*0.6*24) * time.Hour)

		r := record.Record{
			record.FieldReference:        fmt.Sprintf("INC-%04d", i+1),
			record.FieldReportingPeriod:  periodOf(occurred),
			record.FieldDate:             occurred.Format("2006-01-02"),
			record.FieldFunction:         departments[rng.Intn(len(departments))],
			record.FieldIncidentType:     incidentTypes[rng.Intn(len(incidentTypes))],
			record.FieldLocation:         locations[rng.Intn(len(locations))],
			record.FieldInvestigationDue: due.Format("2006-01-02"),
			record.FieldRIDDOR:           "No",
			record.FieldDaysLost:         0,
		}
		if rng.Float64() < 0.08 {
			r[record.FieldRIDDOR] = "Yes"
			r[record.FieldDaysLost] = float64(rng.Intn(20) + 7)
		}
		if investigated.Before(cfg.Now) {
			r[record.FieldStatus] = "Closed"
			r[record.FieldInvestigationComplete] = investigated.Format("2006-01-02")
		} else {
			r[record.FieldStatus] = "Open"
		}
		doc.Incidents = append(doc.Incidents, r)
	}

	return doc
}

// sampleDays draws a closure time in days. ratio is the record's position in time.
func sampleDays(rng *rand.Rand, cfg GeneratorConfig, ratio float64) float64 {
	k, lambda := 2.5, 20.0 // Mild: most actions close inside the 28 day target
	switch cfg.Scenario {
	case "chaos":
		k = 0.8
		if cfg.Distribution == "weibull" {
			lambda = 30.0
		}
	case "drift":
		k = 2.5 - (1.7 * ratio) // Shift 2.5 -> 0.8
		lambda = 20.0 + (15.0 * ratio)
	}

	if cfg.Distribution == "weibull" {
		return weibullSample(rng, k, lambda)
	}

	// Uniform baseline: 5-30 days
	days := 5.0 + rng.Float64()*25.0
	if cfg.Scenario == "chaos" && rng.Float64() < 0.2 {
		days += 30 + rng.Float64()*60 // Controlled Black Swans
	}
	if cfg.Scenario == "drift" && ratio > 0.5 {
		days *= 2.0
	}
	return days
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// periodOf maps a date to its monthly reporting period code.
func periodOf(t time.Time) string {
	return period.Code{Year: t.Year() % 100, Period: int(t.Month())}.String()
}

// Save writes the document as kpi_data.json in outDir.
func Save(outDir string, doc *snapshot.Document) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, snapshot.CacheFileName)
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return path, os.Rename(tmpPath, path)
}
