// Package factors holds the emission factor tables used by the estimation engine.
//
// Each table maps a normalised subtype key (for example "electric_car" or
// "mobile_camp") to a single kg CO2e coefficient. Tables are fixed for the
// lifetime of the process; lookups of unknown subtypes report "not found"
// rather than failing, and callers treat that as a zero contribution.
package factors

import "fmt"

// Category identifies which factor table a subtype belongs to.
type Category int

const (
	// CategoryTransport covers per passenger-km travel modes.
	CategoryTransport Category = iota

	// CategoryFlightClass covers cabin class multipliers applied to flights.
	CategoryFlightClass

	// CategoryAccommodation covers per guest-night stays.
	CategoryAccommodation

	// CategoryAdventure covers per participant activities, billed per km or per night.
	CategoryAdventure
)

// String returns the canonical name of the category.
func (c Category) String() string {
	switch c {
	case CategoryTransport:
		return "transport"
	case CategoryFlightClass:
		return "flight_class"
	case CategoryAccommodation:
		return "accommodation"
	case CategoryAdventure:
		return "adventure"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ParseCategory converts a category name into a Category.
func ParseCategory(s string) (Category, bool) {
	switch normalizeKey(s) {
	case "transport", "travel":
		return CategoryTransport, true
	case "flight_class", "class":
		return CategoryFlightClass, true
	case "accommodation", "stay":
		return CategoryAccommodation, true
	case "adventure", "activity":
		return CategoryAdventure, true
	default:
		return 0, false
	}
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryTransport, CategoryFlightClass, CategoryAccommodation, CategoryAdventure}
}

// Unit describes the quantity a coefficient multiplies.
type Unit string

// Coefficient units.
const (
	UnitPassengerKm      Unit = "per_passenger_km"
	UnitMultiplier       Unit = "multiplier"
	UnitGuestNight       Unit = "per_guest_night"
	UnitParticipantKm    Unit = "per_participant_km"
	UnitParticipantNight Unit = "per_participant_night"
)

// Factor is a single row of a factor table.
type Factor struct {
	Category Category `json:"-" yaml:"-"`
	Subtype  string   `json:"subtype" yaml:"subtype"`
	Value    float64  `json:"value" yaml:"value"`
	Unit     Unit     `json:"unit" yaml:"unit"`
}

// CategoryName returns the name of the table the row belongs to.
func (f Factor) CategoryName() string {
	return f.Category.String()
}
