// Package engine folds activity items into event totals and owns the
// workflow session that carries event data and items between steps.
package engine

import (
	"math"

	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/factors"
)

// Result is the aggregate footprint of an item list.
// It is never stored; every call to Aggregate recomputes it.
type Result struct {
	// TotalCO2Kg is the sum of every confirmed item plus the draft.
	TotalCO2Kg float64 `json:"total_co2_kg"`

	// TreesNeeded is ceil(TotalCO2Kg / 150).
	TreesNeeded int `json:"trees_needed"`

	// ByKind holds per-category subtotals. Kinds with no items are absent.
	ByKind map[estimate.Kind]float64 `json:"by_kind"`

	// ItemCount counts confirmed items (the draft is not counted).
	ItemCount int `json:"item_count"`

	// DraftCO2Kg is the contribution of the unconfirmed draft, if any.
	DraftCO2Kg float64 `json:"draft_co2_kg"`

	// PromotionalCost is the summed spend on promotional items.
	PromotionalCost float64 `json:"promotional_cost"`

	// FoodUnits is the number of catering units (meals and drinks).
	FoodUnits int `json:"food_units"`

	// UnknownSubtypes counts items that silently contributed zero
	// because their subtype has no factor row.
	UnknownSubtypes int `json:"unknown_subtypes"`
}

// TreesNeeded converts a CO2e total into a tree-offset count:
// ceil(total / TreeAbsorptionKgPerYear), never negative.
func TreesNeeded(totalKg float64) int {
	if totalKg <= 0 || math.IsNaN(totalKg) {
		return 0
	}
	return int(math.Ceil(totalKg / factors.TreeAbsorptionKgPerYear))
}

// Aggregate sums each item's independently computed CO2e.
// draft may be nil; when present it is added to the total but not to ItemCount.
func Aggregate(items []estimate.Item, draft *estimate.Item) Result {
	res := Result{ByKind: make(map[estimate.Kind]float64)}

	for _, item := range items {
		res.add(item)
		res.ItemCount++
	}

	if draft != nil {
		res.DraftCO2Kg = res.add(*draft)
	}

	res.TreesNeeded = TreesNeeded(res.TotalCO2Kg)
	return res
}

func (r *Result) add(item estimate.Item) float64 {
	co2 := estimate.ComputeItemCO2(item)
	r.TotalCO2Kg += co2
	r.ByKind[item.Kind] += co2

	if item.UnknownSubtype() {
		r.UnknownSubtypes++
	}
	if item.Promotional != nil && item.Kind == estimate.KindPromotional {
		r.PromotionalCost += estimate.Promotional(*item.Promotional).Cost
	}
	if item.FoodDrink != nil && (item.Kind == estimate.KindMeal || item.Kind == estimate.KindDrink) {
		r.FoodUnits += estimate.ClampInt(item.FoodDrink.Units)
	}
	return co2
}

// Share returns the percentage of the total contributed by a kind.
func (r Result) Share(kind estimate.Kind) float64 {
	if r.TotalCO2Kg <= 0 {
		return 0
	}
	return r.ByKind[kind] / r.TotalCO2Kg * 100
}
