package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"sheq-kpi/internal/record"
)

// Document is the exported KPI dataset. Meta is carried through untouched.
type Document struct {
	SafetyActions []record.Record `json:"safety_actions"`
	Incidents     []record.Record `json:"incidents"`
	Meta          map[string]any  `json:"meta,omitempty"`
}

// Decode reads a Document. Records are not validated; missing collections decode as empty.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode KPI document: %w", err)
	}
	if doc.SafetyActions == nil {
		doc.SafetyActions = []record.Record{}
	}
	if doc.Incidents == nil {
		doc.Incidents = []record.Record{}
	}
	return &doc, nil
}
