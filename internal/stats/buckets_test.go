package stats

import (
	"testing"

	"sheq-kpi/internal/record"
)

func TestBucketize(t *testing.T) {
	rows := []record.Record{
		{"Incident Type": "Slip"},
		{"Incident Type": "Near Miss"},
		{"Accident/Incident Type": "Near Miss"},
		{"Incident Type": " Slip "},
		{"Incident Type": "Vehicle"},
		{"Incident Type": "Slip"},
		{"Incident Type": ""},
		{"Accident/Incident Type": "  "},
		{"Status": "Open"},
		{"Incident Type": "Fire"},
	}

	got := Bucketize(rows, record.FieldIncidentType, record.FieldAccidentIncidentType)
	expected := []Bucket{
		{"Slip", 3},
		{"Near Miss", 2},
		{"Vehicle", 1},
		{"Fire", 1},
	}

	if len(got) != len(expected) {
		t.Fatalf("Expected %d buckets, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("at index %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}

func TestBucketize_TiesKeepFirstSeenOrder(t *testing.T) {
	rows := []record.Record{
		{"Dept": "Zeta"}, {"Dept": "Alpha"}, {"Dept": "Mid"},
	}
	for try := 0; try < 10; try++ {
		got := Bucketize(rows, record.FieldDept, "")
		if got[0].Category != "Zeta" || got[1].Category != "Alpha" || got[2].Category != "Mid" {
			t.Fatalf("tie order changed on try %d: %+v", try, got)
		}
	}
}

func TestBucketize_Empty(t *testing.T) {
	if got := Bucketize(nil, record.FieldDept, record.FieldFunction); len(got) != 0 {
		t.Errorf("Expected no buckets, got %+v", got)
	}
}

func TestFindBreakdown(t *testing.T) {
	b, ok := FindBreakdown("actions_by_dept")
	if !ok {
		t.Fatal("Expected actions_by_dept to exist")
	}
	if b.Field != record.FieldDept || b.AltField != record.FieldFunction {
		t.Errorf("Unexpected fields: %+v", b)
	}
	if _, ok := FindBreakdown("nope"); ok {
		t.Error("Expected unknown breakdown to be missing")
	}
}
