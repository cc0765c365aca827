// Package greenops turns event CO2e totals into relatable equivalencies
// (trees to plant, miles driven, smartphone charges) and formats carbon
// and cost figures for display.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyTreesToPlant is the number of trees absorbing the total in one year.
	EquivalencyTreesToPlant EquivalencyType = iota

	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyTreesToPlant:
		return "TreesToPlant"
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText encodes the type by name so JSON output stays readable.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput is a carbon amount with its unit.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, t, lb, optionally suffixed with CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the normalized input value in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	// Results are ordered trees, miles, phones.
	Results []EquivalencyResult `json:"results"`

	// DisplayText example: "Plant ~5 trees to offset, or the same as driving ~3,320 miles".
	DisplayText string `json:"display_text"`

	// CompactText example: "(≈ 5 trees, 3,320 mi, 77,543 phones)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}

// Find returns the result of the given type.
func (o EquivalencyOutput) Find(t EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == t {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}
