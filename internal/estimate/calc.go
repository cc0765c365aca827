package estimate

import (
	"github.com/rshade/eventcarbon/internal/factors"
)

// Venue formula constants.
const (
	// VenueAvgKgPerAttendee is the industry-average kg CO2e per attendee.
	VenueAvgKgPerAttendee = 2.5

	// VenueKgPerSqm and VenueKgPerAttendee drive the measured formula.
	VenueKgPerSqm      = 0.1
	VenueKgPerAttendee = 2.0

	// venueAvgRatingStep and venueMeasuredRatingStep scale (6 - rating).
	venueAvgRatingStep      = 0.2
	venueMeasuredRatingStep = 0.15

	venueRatingCeiling = 6
	maxVenueRating     = 5
)

// Rounding precision per category.
const (
	activityPlaces = 1
	venuePlaces    = 2
)

// roundTripFactor doubles a one-way result.
const roundTripFactor = 2

// TripCO2 returns kg CO2e for a trip:
//
//	distance x factor x travellers [x class multiplier for flights]
//
// rounded to one decimal, then doubled for round trips. Doubling after
// rounding keeps a return journey exactly twice the one-way figure.
func TripCO2(t Trip) float64 {
	factor, ok := factors.Value(factors.CategoryTransport, t.Subtype)
	if !ok || t.DistanceKm <= 0 || t.Travellers <= 0 {
		return 0
	}

	co2 := t.DistanceKm * factor * float64(t.Travellers)
	if key, _ := factors.Canonical(factors.CategoryTransport, t.Subtype); key == factors.SubtypeFlight {
		multiplier, found := factors.FlightClassMultiplier(t.FlightClass)
		if !found {
			multiplier = factors.EconomyMultiplier
		}
		co2 *= multiplier
	}

	co2 = Round(co2, activityPlaces)
	if t.RoundTrip {
		co2 *= roundTripFactor
	}
	return co2
}

// AccommodationCO2 returns nights x guests x factor, rounded to one decimal.
func AccommodationCO2(a Accommodation) float64 {
	factor, ok := factors.Value(factors.CategoryAccommodation, a.Subtype)
	if !ok || a.Nights <= 0 || a.Guests <= 0 {
		return 0
	}
	return Round(float64(a.Nights)*float64(a.Guests)*factor, activityPlaces)
}

// AdventureCO2 returns the activity footprint, rounded to one decimal.
// Lodging subtypes multiply duration, all others multiply distance.
func AdventureCO2(a Adventure) float64 {
	factor, ok := factors.Value(factors.CategoryAdventure, a.Subtype)
	if !ok || a.Participants <= 0 {
		return 0
	}

	quantity := a.DistanceKm
	if isLodging(a.Subtype) {
		quantity = float64(a.DurationNights)
	}
	if quantity <= 0 {
		return 0
	}
	return Round(quantity*float64(a.Participants)*factor, activityPlaces)
}

// VenueCO2 returns the venue footprint rounded to two decimals.
// Higher star ratings lower the multiplier; an unrated venue uses 1.
func VenueCO2(v VenueSpace) float64 {
	attendees := float64(ClampInt(v.Attendees))
	rating := v.Rating
	if rating > maxVenueRating {
		rating = maxVenueRating
	}

	if v.UseIndustryAverage {
		multiplier := 1.0
		if rating > 0 {
			multiplier = float64(venueRatingCeiling-rating) * venueAvgRatingStep
		}
		return Round(attendees*VenueAvgKgPerAttendee*multiplier, venuePlaces)
	}

	multiplier := 1.0
	if rating > 0 {
		multiplier = float64(venueRatingCeiling-rating) * venueMeasuredRatingStep
	}
	size := ClampNonNegative(v.SizeSqm)
	return Round((size*VenueKgPerSqm+attendees*VenueKgPerAttendee)*multiplier, venuePlaces)
}

// PromotionalResult is the footprint and spend of a promotional item line.
type PromotionalResult struct {
	CO2Kg float64 `json:"co2_kg"`
	Cost  float64 `json:"cost"`
}

// Promotional returns quantity x factor and quantity x price, unrounded.
func Promotional(p PromotionalItem) PromotionalResult {
	qty := float64(ClampInt(p.Quantity))
	return PromotionalResult{
		CO2Kg: qty * ClampNonNegative(p.CO2PerUnitKg),
		Cost:  qty * ClampNonNegative(p.UnitPrice),
	}
}

// FoodDrinkCO2 is always zero: catering has quantities but no factor.
func FoodDrinkCO2(FoodDrink) float64 {
	return 0
}

// ComputeItemCO2 dispatches an item to its estimation function.
// Items with an unknown kind or a missing payload contribute 0.
func ComputeItemCO2(item Item) float64 {
	switch item.Kind {
	case KindTrip:
		if item.Trip != nil {
			return TripCO2(*item.Trip)
		}
	case KindAccommodation:
		if item.Accommodation != nil {
			return AccommodationCO2(*item.Accommodation)
		}
	case KindAdventure:
		if item.Adventure != nil {
			return AdventureCO2(*item.Adventure)
		}
	case KindMeal, KindDrink:
		if item.FoodDrink != nil {
			return FoodDrinkCO2(*item.FoodDrink)
		}
	case KindPromotional:
		if item.Promotional != nil {
			return Promotional(*item.Promotional).CO2Kg
		}
	case KindVenue:
		if item.Venue != nil {
			return VenueCO2(*item.Venue)
		}
	}
	return 0
}

// UnknownSubtype reports whether the item names a subtype that has no
// factor row, i.e. it silently contributes 0. Kinds without a factor
// table always report false.
func (i Item) UnknownSubtype() bool {
	var category factors.Category
	switch i.Kind {
	case KindTrip:
		category = factors.CategoryTransport
	case KindAccommodation:
		category = factors.CategoryAccommodation
	case KindAdventure:
		category = factors.CategoryAdventure
	default:
		return false
	}
	_, ok := factors.Lookup(category, i.Subtype())
	return !ok
}

func isLodging(subtype string) bool {
	return factors.IsLodging(subtype)
}
