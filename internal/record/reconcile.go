package record

import "strings"

// Candidate field lists, in resolution order. Upstream exports have renamed these
// columns between versions, so each semantic value is probed under every known name.
var (
	DepartmentFields   = []string{FieldFunction, FieldDept}
	ReportableFields   = []string{FieldRIDDOR, "RIDDOR/SMIS", "RIDDOR Reportable", "Reportable"}
	IncidentTypeFields = []string{FieldIncidentType, FieldAccidentIncidentType}
)

// Status is the reconciled lifecycle state of a record. At most one flag is set.
type Status struct {
	Open            bool
	Closed          bool
	OverdueExplicit bool
}

// ResolveStatus classifies the free-text status field.
func ResolveStatus(r Record) Status {
	switch strings.ToLower(r.Text(FieldStatus)) {
	case "open":
		return Status{Open: true}
	case "closed":
		return Status{Closed: true}
	case "overdue":
		return Status{OverdueExplicit: true}
	}
	return Status{}
}

// ResolveDepartment returns the owning department, preferring Function over Dept.
func ResolveDepartment(r Record) string {
	return FirstText(r, DepartmentFields...)
}

// FirstText returns the first non-blank trimmed text among fields, or "".
func FirstText(r Record, fields ...string) string {
	for _, f := range fields {
		if s := r.Text(f); s != "" {
			return s
		}
	}
	return ""
}

// ResolveReportable reports whether an incident is flagged under RIDDOR (or an
// equivalent scheme). The first candidate field carrying a value decides; a record
// with no candidate, or an unrecognised value, is treated as not reportable.
func ResolveReportable(r Record) bool {
	for _, f := range ReportableFields {
		v, ok := r.Value(f)
		if !ok {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return isReportableValue(v)
	}
	return false
}

func isReportableValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		switch s {
		case "yes", "y", "true", "1":
			return true
		}
		return strings.Contains(s, "reportable")
	}
	if n, ok := AsNumber(v); ok {
		return n == 1
	}
	return false
}

// ResolveCategory reads field, falling back to altField only when field is missing
// or null. An empty string in field does not fall through.
func ResolveCategory(r Record, field, altField string) string {
	if v, ok := r.Value(field); ok {
		return Text(v)
	}
	if altField == "" {
		return ""
	}
	return r.Text(altField)
}
