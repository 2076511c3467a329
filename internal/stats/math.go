package stats

import (
	"slices"

	"sheq-kpi/internal/record"
)

// Percent returns round(part/whole*100), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(record.Round(float64(part) / float64(whole) * 100))
}

// RoundedMean returns the mean of values rounded half up, or 0 for an empty slice.
func RoundedMean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return int(record.Round(sum / float64(len(values))))
}

// CalculateMedianContinuous finds the median value in a slice of floats.
func CalculateMedianContinuous(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Work on a copy to avoid mutating the original
	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}
