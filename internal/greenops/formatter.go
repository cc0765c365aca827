package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer uses the English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with exactly precision decimals and thousand
// separators. Halves round away from zero.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	const base = 10
	scale := math.Pow(base, float64(precision))
	rounded := math.Round(f*scale) / scale
	return printer.Sprintf("%v", number.Decimal(rounded, number.Scale(precision)))
}

// FormatLarge abbreviates counts of a million or more ("~5.2 million",
// "~1.5 billion") and groups smaller ones ("999,999").
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatKg formats a CO2e amount in kilograms, switching to tonnes at 1,000 kg.
// Example: FormatKg(637.4, 1) returns "637.4 kg"; FormatKg(12500, 1) returns "12.5 t".
func FormatKg(kg float64, precision int) string {
	if math.Abs(kg) >= TonsToKg {
		return FormatFloat(kg/TonsToKg, precision) + " t"
	}
	return FormatFloat(kg, precision) + " kg"
}

// FormatCost formats a monetary amount with two decimals and an optional
// currency symbol prefix. Example: FormatCost(1234.5, "$") returns "$1,234.50".
func FormatCost(amount float64, symbol string) string {
	const centsPrecision = 2
	if amount < 0 {
		return "-" + symbol + FormatFloat(-amount, centsPrecision)
	}
	return symbol + FormatFloat(amount, centsPrecision)
}
