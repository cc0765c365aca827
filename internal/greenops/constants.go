package greenops

import "github.com/rshade/eventcarbon/internal/factors"

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// TreeAbsorptionFactor is kg CO2e one tree absorbs per year.
	TreeAbsorptionFactor = factors.TreeAbsorptionKgPerYear
)

// Unit conversion constants for normalizing carbon values to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches to "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" format.
	BillionThreshold = 1_000_000_000
)
