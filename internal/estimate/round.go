package estimate

import "math"

// Round rounds v to the given number of decimal places, halves rounding up.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	const base = 10
	scale := math.Pow(base, float64(places))
	return math.Floor(v*scale+0.5) / scale
}

// ClampNonNegative maps negative and non-finite input to 0.
// Numeric form fields pass through this before reaching the estimators.
func ClampNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ClampInt maps negative counts to 0.
func ClampInt(v int) int {
	return max(v, 0)
}
