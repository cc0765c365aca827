package greenops

import (
	"fmt"
	"math"
)

// Calculate normalizes input to kilograms and computes trees to plant,
// miles driven and smartphones charged.
//
// Inputs below MinEquivalencyThresholdKg give an empty output and no error.
// Invalid units and negative values return the normalization error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	return CalculateKg(kg)
}

// CalculateKg is Calculate for a value already in kilograms.
func CalculateKg(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	trees := math.Ceil(kg / TreeAbsorptionFactor)
	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor

	if math.IsInf(phones, 0) || math.IsNaN(phones) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	treesFormatted := formatEquivalencyValue(trees)
	milesFormatted := formatEquivalencyValue(miles)
	phonesFormatted := formatEquivalencyValue(phones)

	treeNoun := "trees"
	if trees == 1 {
		treeNoun = "tree"
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: []EquivalencyResult{
			{Type: EquivalencyTreesToPlant, Value: trees, FormattedValue: treesFormatted, Label: "trees to plant"},
			{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: milesFormatted, Label: "miles driven"},
			{
				Type:           EquivalencySmartphonesCharged,
				Value:          phones,
				FormattedValue: phonesFormatted,
				Label:          "smartphones charged",
			},
		},
		DisplayText: fmt.Sprintf("Plant ~%s %s to offset, or the same as driving ~%s miles",
			treesFormatted, treeNoun, milesFormatted),
		CompactText: fmt.Sprintf("(≈ %s %s, %s mi, %s phones)",
			treesFormatted, treeNoun, milesFormatted, phonesFormatted),
	}, nil
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
