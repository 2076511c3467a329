package record

import (
	"math"
	"strconv"
	"strings"
)

// Record is a single row from the KPI document, keyed by the spreadsheet header name.
// Values are whatever the JSON decoder produced (string, float64, bool, nil).
type Record map[string]any

// Kind distinguishes the two record collections.
type Kind string

const (
	// Actions are corrective safety actions.
	Actions Kind = "actions"
	// Incidents are accident and incident reports.
	Incidents Kind = "incidents"
)

// Action field names as exported from the "Safety Action Tracking" sheet.
const (
	FieldStatus          = "Status"
	FieldActionType      = "Action/Recommendation Type"
	FieldDateRaised      = "Date Action Raised"
	FieldPeriodRaised    = "Period Action Raised"
	FieldDept            = "Dept"
	FieldFunction        = "Function"
	FieldActionOwner     = "Action Owner"
	FieldTargetDate      = "Action Completion Target Date"
	FieldCompleted       = "Action Completed"
	FieldDaysToClose     = "Number of days taken to close"
	FieldOverdueCalc     = "Is Overdue (calc)"
	FieldComments        = "Comments"
	FieldIncidentTitle   = "Incident Title"
	FieldActionStatement = "Action/Recommendation"
)

// Incident field names as exported from the "Accident & Incident Detail" sheet.
const (
	FieldDate                  = "Date"
	FieldReportingPeriod       = "Reporting Period"
	FieldIncidentType          = "Incident Type"
	FieldAccidentIncidentType  = "Accident/Incident Type"
	FieldInvestigationDue      = "Investigation Due"
	FieldInvestigationComplete = "Investigation Completion date"
	FieldDaysLost              = "Total Number of days Lost"
	FieldRIDDOR                = "RIDDOR"
	FieldLocation              = "Location"
	FieldReference             = "Accident/Incident Reference"
)

// PeriodField returns the reporting-period field for a kind.
func PeriodField(kind Kind) string {
	if kind == Actions {
		return FieldPeriodRaised
	}
	return FieldReportingPeriod
}

// DateField returns the field a date-range filter applies to for a kind.
func DateField(kind Kind) string {
	if kind == Actions {
		return FieldDateRaised
	}
	return FieldDate
}

// Value returns the raw value of a field and whether it is present and non-null.
func (r Record) Value(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Text renders a field as trimmed text. Missing and null fields render as "".
func (r Record) Text(field string) string {
	v, ok := r.Value(field)
	if !ok {
		return ""
	}
	return Text(v)
}

// Text renders an arbitrary decoded JSON value as trimmed text.
func Text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
