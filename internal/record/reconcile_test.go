package record

import "testing"

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   any
		expected Status
	}{
		{"Open", "Open", Status{Open: true}},
		{"ClosedPadded", "  CLOSED ", Status{Closed: true}},
		{"Overdue", "overdue", Status{OverdueExplicit: true}},
		{"Unknown", "In Progress", Status{}},
		{"Missing", nil, Status{}},
		{"Numeric", 3.0, Status{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{}
			if tt.status != nil {
				r[FieldStatus] = tt.status
			}
			if got := ResolveStatus(r); got != tt.expected {
				t.Errorf("ResolveStatus() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestResolveDepartment(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		expected string
	}{
		{"FunctionPreferred", Record{"Function": " Operations ", "Dept": "Fleet"}, "Operations"},
		{"FallbackToDept", Record{"Dept": "Fleet"}, "Fleet"},
		{"BlankFunctionFallsBack", Record{"Function": "  ", "Dept": "Fleet"}, "Fleet"},
		{"Neither", Record{"Status": "Open"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDepartment(tt.rec); got != tt.expected {
				t.Errorf("ResolveDepartment() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveReportable(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		expected bool
	}{
		{"SlashVariantYes", Record{"RIDDOR/SMIS": "Yes"}, true},
		{"BooleanTrue", Record{"RIDDOR": true}, true},
		{"ReportableStringOne", Record{"RIDDOR Reportable": "1"}, true},
		{"NumericOne", Record{"Reportable": 1.0}, true},
		{"ShortY", Record{"RIDDOR": "y"}, true},
		{"ContainsReportable", Record{"RIDDOR": "RIDDOR Reportable - over 7 day"}, true},
		{"No", Record{"RIDDOR": "No"}, false},
		{"BooleanFalse", Record{"RIDDOR": false}, false},
		{"NumericTwo", Record{"RIDDOR": 2.0}, false},
		{"NoCandidates", Record{"Status": "Open"}, false},
		{"FirstPresentDecides", Record{"RIDDOR": "No", "RIDDOR/SMIS": "Yes"}, false},
		{"NullSkipped", Record{"RIDDOR": nil, "RIDDOR/SMIS": "Yes"}, true},
		{"BlankSkipped", Record{"RIDDOR": " ", "Reportable": true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveReportable(tt.rec); got != tt.expected {
				t.Errorf("ResolveReportable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestResolveCategory(t *testing.T) {
	if got := ResolveCategory(Record{"Incident Type": " Slip "}, FieldIncidentType, FieldAccidentIncidentType); got != "Slip" {
		t.Errorf("Expected primary field value, got %q", got)
	}
	if got := ResolveCategory(Record{"Accident/Incident Type": "Fall"}, FieldIncidentType, FieldAccidentIncidentType); got != "Fall" {
		t.Errorf("Expected fallback to alt field, got %q", got)
	}
	if got := ResolveCategory(Record{"Incident Type": "", "Accident/Incident Type": "Fall"}, FieldIncidentType, FieldAccidentIncidentType); got != "" {
		t.Errorf("Expected empty primary to win over alt field, got %q", got)
	}
	if got := ResolveCategory(Record{"Incident Type": nil, "Accident/Incident Type": "Fall"}, FieldIncidentType, FieldAccidentIncidentType); got != "Fall" {
		t.Errorf("Expected null primary to fall back, got %q", got)
	}
}
