package stats

import (
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, whole int
		expected    int
	}{
		{"Empty", 0, 0, 0},
		{"ThreeQuarters", 3, 4, 75},
		{"TwoThirds", 2, 3, 67},
		{"HalfUp", 1, 8, 13},
		{"All", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.part, tt.whole); got != tt.expected {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.expected)
			}
		})
	}
}

func TestRoundedMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected int
	}{
		{"Empty", nil, 0},
		{"Exact", []float64{2, 4}, 3},
		{"HalfUp", []float64{2, 3}, 3},
		{"Negative", []float64{-3, -2}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundedMean(tt.values); got != tt.expected {
				t.Errorf("RoundedMean() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCalculateMedianContinuous(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"Empty", []float64{}, 0},
		{"SingleItem", []float64{5.5}, 5.5},
		{"OddCount", []float64{1.1, 3.3, 2.2, 4.4, 5.5}, 3.3},
		{"EvenCount", []float64{1, 2, 3, 4}, 2.5},
		{"Unsorted", []float64{10.5, 2.5, 8.5, 4.5, 6.5}, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateMedianContinuous(tt.values); got != tt.expected {
				t.Errorf("CalculateMedianContinuous() = %v, want %v", got, tt.expected)
			}
		})
	}
}
