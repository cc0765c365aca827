// Package estimate converts activity items into kg CO2e.
//
// An Item is a tagged union: Kind selects which payload pointer is
// meaningful. All estimation functions are pure and never fail for
// in-domain input; unknown subtypes resolve to a zero contribution.
package estimate

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies an activity item variant.
type Kind string

// Activity item kinds.
const (
	KindTrip          Kind = "trip"
	KindAccommodation Kind = "accommodation"
	KindAdventure     Kind = "adventure"
	KindMeal          Kind = "meal"
	KindDrink         Kind = "drink"
	KindPromotional   Kind = "promotional"
	KindVenue         Kind = "venue"
)

// Kinds returns every kind in display order.
func Kinds() []Kind {
	return []Kind{KindVenue, KindMeal, KindDrink, KindTrip, KindAccommodation, KindAdventure, KindPromotional}
}

// ParseKind converts a user-entered name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trip", "travel", "transport":
		return KindTrip, nil
	case "accommodation", "stay":
		return KindAccommodation, nil
	case "adventure", "activity":
		return KindAdventure, nil
	case "meal", "food":
		return KindMeal, nil
	case "drink", "beverage":
		return KindDrink, nil
	case "promotional", "promo", "promotion":
		return KindPromotional, nil
	case "venue", "space":
		return KindVenue, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Trip is a journey made by one or more travellers.
type Trip struct {
	Subtype     string  `json:"subtype"`
	DistanceKm  float64 `json:"distance_km"`
	Travellers  int     `json:"travellers"`
	RoundTrip   bool    `json:"round_trip"`
	FlightClass string  `json:"flight_class,omitempty"`
}

// Accommodation is a stay measured in guest-nights.
type Accommodation struct {
	Subtype string `json:"subtype"`
	Nights  int    `json:"nights"`
	Guests  int    `json:"guests"`
}

// Adventure is a guided activity. Lodging subtypes use DurationNights,
// every other subtype uses DistanceKm.
type Adventure struct {
	Subtype        string  `json:"subtype"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
	DurationNights int     `json:"duration_nights,omitempty"`
	Participants   int     `json:"participants"`
}

// FoodDrink records catering quantities. No emission factor is defined
// for catering, so these items contribute units but no CO2e.
type FoodDrink struct {
	Category string `json:"category"`
	Units    int    `json:"units"`
}

// PromotionalItem is merchandise handed out at an event.
type PromotionalItem struct {
	Label        string  `json:"label"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	CO2PerUnitKg float64 `json:"co2_per_unit_kg"`
}

// VenueSpace describes the event venue.
type VenueSpace struct {
	Attendees          int     `json:"attendees"`
	SizeSqm            float64 `json:"size_sqm"`
	Rating             int     `json:"rating"`
	UseIndustryAverage bool    `json:"use_industry_average"`
}

// Item is one user-entered unit of activity awaiting CO2e computation.
type Item struct {
	ID        string    `json:"id,omitempty"`
	Kind      Kind      `json:"kind"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`

	Trip          *Trip            `json:"trip,omitempty"`
	Accommodation *Accommodation   `json:"accommodation,omitempty"`
	Adventure     *Adventure       `json:"adventure,omitempty"`
	FoodDrink     *FoodDrink       `json:"food_drink,omitempty"`
	Promotional   *PromotionalItem `json:"promotional,omitempty"`
	Venue         *VenueSpace      `json:"venue,omitempty"`
}

// NewTrip wraps a Trip in an Item.
func NewTrip(t Trip) Item { return Item{Kind: KindTrip, Trip: &t} }

// NewAccommodation wraps an Accommodation in an Item.
func NewAccommodation(a Accommodation) Item {
	return Item{Kind: KindAccommodation, Accommodation: &a}
}

// NewAdventure wraps an Adventure in an Item.
func NewAdventure(a Adventure) Item { return Item{Kind: KindAdventure, Adventure: &a} }

// NewMeal wraps a FoodDrink as a meal.
func NewMeal(f FoodDrink) Item { return Item{Kind: KindMeal, FoodDrink: &f} }

// NewDrink wraps a FoodDrink as a drink.
func NewDrink(f FoodDrink) Item { return Item{Kind: KindDrink, FoodDrink: &f} }

// NewPromotional wraps a PromotionalItem in an Item.
func NewPromotional(p PromotionalItem) Item {
	return Item{Kind: KindPromotional, Label: p.Label, Promotional: &p}
}

// NewVenue wraps a VenueSpace in an Item.
func NewVenue(v VenueSpace) Item { return Item{Kind: KindVenue, Venue: &v} }

// Validate checks that the payload matching Kind is present.
// Unknown subtypes are not an error.
func (i Item) Validate() error {
	var present bool
	switch i.Kind {
	case KindTrip:
		present = i.Trip != nil
	case KindAccommodation:
		present = i.Accommodation != nil
	case KindAdventure:
		present = i.Adventure != nil
	case KindMeal, KindDrink:
		present = i.FoodDrink != nil
	case KindPromotional:
		present = i.Promotional != nil
	case KindVenue:
		present = i.Venue != nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, i.Kind)
	}
	if !present {
		return fmt.Errorf("%w: %s item has no %s payload", ErrMissingPayload, i.Kind, i.Kind)
	}
	return nil
}

// Subtype returns the factor-table subtype of the item, if it has one.
func (i Item) Subtype() string {
	switch {
	case i.Kind == KindTrip && i.Trip != nil:
		return i.Trip.Subtype
	case i.Kind == KindAccommodation && i.Accommodation != nil:
		return i.Accommodation.Subtype
	case i.Kind == KindAdventure && i.Adventure != nil:
		return i.Adventure.Subtype
	case (i.Kind == KindMeal || i.Kind == KindDrink) && i.FoodDrink != nil:
		return i.FoodDrink.Category
	default:
		return ""
	}
}

// DisplayLabel returns Label, or a description derived from the payload.
func (i Item) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	if s := i.Subtype(); s != "" {
		return s
	}
	if i.Kind == KindVenue {
		return "venue"
	}
	return string(i.Kind)
}

// Details returns a short human-readable summary of the quantities.
func (i Item) Details() string {
	switch {
	case i.Kind == KindTrip && i.Trip != nil:
		t := i.Trip
		s := fmt.Sprintf("%.0f km x %d", t.DistanceKm, t.Travellers)
		if t.FlightClass != "" {
			s += " " + t.FlightClass
		}
		if t.RoundTrip {
			s += " return"
		}
		return s
	case i.Kind == KindAccommodation && i.Accommodation != nil:
		return fmt.Sprintf("%d nights x %d guests", i.Accommodation.Nights, i.Accommodation.Guests)
	case i.Kind == KindAdventure && i.Adventure != nil:
		a := i.Adventure
		if isLodging(a.Subtype) {
			return fmt.Sprintf("%d nights x %d", a.DurationNights, a.Participants)
		}
		return fmt.Sprintf("%.0f km x %d", a.DistanceKm, a.Participants)
	case (i.Kind == KindMeal || i.Kind == KindDrink) && i.FoodDrink != nil:
		return fmt.Sprintf("%d units", i.FoodDrink.Units)
	case i.Kind == KindPromotional && i.Promotional != nil:
		return fmt.Sprintf("%d x %.2f", i.Promotional.Quantity, i.Promotional.UnitPrice)
	case i.Kind == KindVenue && i.Venue != nil:
		v := i.Venue
		if v.UseIndustryAverage {
			return fmt.Sprintf("%d attendees, %d stars, industry avg", v.Attendees, v.Rating)
		}
		return fmt.Sprintf("%d attendees, %.0f sqm, %d stars", v.Attendees, v.SizeSqm, v.Rating)
	default:
		return ""
	}
}
