package greenops

import (
	"math"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Unit conversion errors, compared with errors.Is.
var (
	ErrInvalidUnit         = constError("invalid carbon unit")
	ErrNegativeValue       = constError("negative carbon value")
	ErrCalculationOverflow = constError("calculation overflow")
)

// massUnit is one accepted spelling family for a CO2e mass.
type massUnit struct {
	symbol  string
	toKg    float64
	aliases []string
}

// massUnits lists the units a supplier datasheet may quote a per-item
// footprint in. Each also accepts a "co2e" suffix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var massUnits = []massUnit{
	{"g", GramsToKg, []string{"gram", "grams"}},
	{"kg", KgToKg, []string{"kilogram", "kilograms"}},
	{"t", TonsToKg, []string{"tonne", "tonnes"}},
	{"lb", PoundsToKg, []string{"lbs", "pound", "pounds"}},
}

// UnitSymbols returns the short unit names in display order.
func UnitSymbols() []string {
	out := make([]string, 0, len(massUnits))
	for _, u := range massUnits {
		out = append(out, u.symbol)
	}
	return out
}

func unitFactor(unit string) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(unit))
	if key == "" {
		return KgToKg, true
	}
	key = strings.TrimSuffix(key, "co2e")
	for _, u := range massUnits {
		if key == u.symbol {
			return u.toKg, true
		}
		for _, a := range u.aliases {
			if key == a {
				return u.toKg, true
			}
		}
	}
	return 0, false
}

// NormalizeToKg converts a CO2e mass to kilograms. An empty unit means kg.
//
// Returns ErrNegativeValue, ErrInvalidUnit or ErrCalculationOverflow.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
