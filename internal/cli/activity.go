package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/factors"
	"github.com/rshade/eventcarbon/internal/greenops"
	"github.com/rshade/eventcarbon/internal/logging"
)

// activityFlags holds the union of per-kind activity flags. Each kind's
// command registers only the flags it reads.
type activityFlags struct {
	label           string
	subtype         string
	distanceKm      float64
	travellers      int
	roundTrip       bool
	flightClass     string
	nights          int
	guests          int
	participants    int
	units           int
	quantity        int
	unitPrice       float64
	co2PerUnit      float64
	co2Unit         string
	attendees       int
	sizeSqm         float64
	rating          int
	industryAverage bool
}

// activityCommand describes one kind's subcommand.
type activityCommand struct {
	kind    estimate.Kind
	use     string
	short   string
	example string
}

//nolint:gochecknoglobals // Read-only command table.
var activityCommands = []activityCommand{
	{estimate.KindTrip, "trip", "Travel by flight, car, rail or other mode",
		"--mode flight --distance 1200 --travellers 3 --class business --round-trip"},
	{estimate.KindAccommodation, "accommodation", "Overnight stays in guest-nights",
		"--type hotel --nights 2 --guests 40"},
	{estimate.KindAdventure, "adventure", "Guided activities billed per km or per night",
		"--type 4x4 --distance 60 --participants 12"},
	{estimate.KindVenue, "venue", "The event venue",
		"--attendees 150 --size 800 --rating 4"},
	{estimate.KindPromotional, "promo", "Promotional merchandise",
		"--label \"Tote bag\" --quantity 200 --unit-price 3.5 --co2-per-unit 450 --co2-unit g"},
	{estimate.KindMeal, "meal", "Catering meals (tracked as units, no CO2e factor)",
		"--category lunch --units 120"},
	{estimate.KindDrink, "drink", "Catering drinks (tracked as units, no CO2e factor)",
		"--category coffee --units 240"},
}

// newActivityCmds builds one subcommand per activity kind. run receives
// the item assembled from that command's flags.
func newActivityCmds(
	parent string,
	run func(cmd *cobra.Command, item estimate.Item) error,
) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(activityCommands))
	for _, ac := range activityCommands {
		cmds = append(cmds, newActivityCmd(parent, ac, run))
	}
	return cmds
}

func newActivityCmd(
	parent string,
	ac activityCommand,
	run func(cmd *cobra.Command, item estimate.Item) error,
) *cobra.Command {
	var f activityFlags

	cmd := &cobra.Command{
		Use:     ac.use,
		Short:   ac.short,
		Example: fmt.Sprintf("  eventcarbon %s %s %s", parent, ac.use, ac.example),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			item, err := f.item(cmd, ac.kind)
			if err != nil {
				return err
			}
			return run(cmd, item)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.label, "label", "", "free-text label for the item")

	switch ac.kind {
	case estimate.KindTrip:
		flags.StringVar(&f.subtype, "mode", "", "transport mode, e.g. flight, car, train")
		flags.Float64Var(&f.distanceKm, "distance", 0, "one-way distance in km")
		flags.IntVar(&f.travellers, "travellers", 1, "number of travellers (default from config)")
		flags.BoolVar(&f.roundTrip, "round-trip", false, "double the one-way result")
		flags.StringVar(&f.flightClass, "class", "", "flight cabin class (default from config)")
		_ = cmd.MarkFlagRequired("mode")
	case estimate.KindAccommodation:
		flags.StringVar(&f.subtype, "type", "", "accommodation type, e.g. hotel, rental, cruise")
		flags.IntVar(&f.nights, "nights", 0, "number of nights")
		flags.IntVar(&f.guests, "guests", 0, "number of guests")
		_ = cmd.MarkFlagRequired("type")
	case estimate.KindAdventure:
		flags.StringVar(&f.subtype, "type", "", "activity type, e.g. 4x4, boat, lodge")
		flags.Float64Var(&f.distanceKm, "distance", 0, "distance in km (per-km activities)")
		flags.IntVar(&f.nights, "nights", 0, "duration in nights (lodge and mobile camp)")
		flags.IntVar(&f.participants, "participants", 0, "number of participants")
		_ = cmd.MarkFlagRequired("type")
	case estimate.KindVenue:
		flags.IntVar(&f.attendees, "attendees", 0, "number of attendees")
		flags.Float64Var(&f.sizeSqm, "size", 0, "venue floor area in square metres")
		flags.IntVar(&f.rating, "rating", 0, "sustainability star rating 0-5 (0 = unrated)")
		flags.BoolVar(&f.industryAverage, "industry-average", false, "use the per-attendee industry average")
	case estimate.KindPromotional:
		flags.IntVar(&f.quantity, "quantity", 0, "number of items")
		flags.Float64Var(&f.unitPrice, "unit-price", 0, "price per item")
		flags.Float64Var(&f.co2PerUnit, "co2-per-unit", 0, "CO2e per item")
		flags.StringVar(&f.co2Unit, "co2-unit", "kg",
			"unit of --co2-per-unit: "+strings.Join(greenops.UnitSymbols(), ", "))
	case estimate.KindMeal, estimate.KindDrink:
		flags.StringVar(&f.subtype, "category", "", "catering category, e.g. lunch, coffee")
		flags.IntVar(&f.units, "units", 0, "number of units served")
	}

	return cmd
}

// item assembles an estimate.Item from the parsed flags. Negative numbers
// are clamped to 0 and config defaults fill flags the user did not set.
func (f *activityFlags) item(cmd *cobra.Command, kind estimate.Kind) (estimate.Item, error) {
	ctx := cmd.Context()
	defaults := config.GetGlobalConfig().Defaults

	var item estimate.Item
	switch kind {
	case estimate.KindTrip:
		travellers := f.travellers
		if !cmd.Flags().Changed("travellers") {
			travellers = defaultTravellers(ctx, defaults.Travellers)
		}
		class := f.flightClass
		if key, _ := factors.Canonical(factors.CategoryTransport, f.subtype); key != factors.SubtypeFlight {
			class = ""
		} else if class == "" {
			class = defaults.FlightClass
		}
		if _, ok := factors.FlightClassMultiplier(class); !ok {
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Str("class", class).
				Msg("unknown flight class, using economy multiplier")
		}
		item = estimate.NewTrip(estimate.Trip{
			Subtype:     f.subtype,
			DistanceKm:  nonNegative(ctx, "distance", f.distanceKm),
			Travellers:  nonNegativeInt(ctx, "travellers", travellers),
			RoundTrip:   f.roundTrip,
			FlightClass: class,
		})
	case estimate.KindAccommodation:
		item = estimate.NewAccommodation(estimate.Accommodation{
			Subtype: f.subtype,
			Nights:  nonNegativeInt(ctx, "nights", f.nights),
			Guests:  nonNegativeInt(ctx, "guests", f.guests),
		})
	case estimate.KindAdventure:
		item = estimate.NewAdventure(estimate.Adventure{
			Subtype:        f.subtype,
			DistanceKm:     nonNegative(ctx, "distance", f.distanceKm),
			DurationNights: nonNegativeInt(ctx, "nights", f.nights),
			Participants:   nonNegativeInt(ctx, "participants", f.participants),
		})
	case estimate.KindVenue:
		item = estimate.NewVenue(estimate.VenueSpace{
			Attendees:          nonNegativeInt(ctx, "attendees", f.attendees),
			SizeSqm:            nonNegative(ctx, "size", f.sizeSqm),
			Rating:             nonNegativeInt(ctx, "rating", f.rating),
			UseIndustryAverage: f.industryAverage,
		})
	case estimate.KindPromotional:
		if !greenops.IsRecognizedUnit(f.co2Unit) {
			return estimate.Item{}, fmt.Errorf("--co2-unit: %w: %q", greenops.ErrInvalidUnit, f.co2Unit)
		}
		perUnitKg, err := greenops.NormalizeToKg(nonNegative(ctx, "co2-per-unit", f.co2PerUnit), f.co2Unit)
		if err != nil {
			return estimate.Item{}, fmt.Errorf("--co2-unit: %w", err)
		}
		item = estimate.NewPromotional(estimate.PromotionalItem{
			Label:        f.label,
			Quantity:     nonNegativeInt(ctx, "quantity", f.quantity),
			UnitPrice:    nonNegative(ctx, "unit-price", f.unitPrice),
			CO2PerUnitKg: perUnitKg,
		})
	case estimate.KindMeal:
		item = estimate.NewMeal(estimate.FoodDrink{Category: f.subtype, Units: nonNegativeInt(ctx, "units", f.units)})
	case estimate.KindDrink:
		item = estimate.NewDrink(estimate.FoodDrink{Category: f.subtype, Units: nonNegativeInt(ctx, "units", f.units)})
	default:
		return estimate.Item{}, fmt.Errorf("%w: %q", estimate.ErrUnknownKind, kind)
	}

	if f.label != "" {
		item.Label = f.label
	}
	warnUnknownSubtype(ctx, item)
	return item, nil
}

func nonNegative(ctx context.Context, flag string, v float64) float64 {
	clamped := estimate.ClampNonNegative(v)
	if clamped != v {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("flag", flag).
			Float64("value", v).
			Msg("invalid value clamped to 0")
	}
	return clamped
}

// defaultTravellers applies the configured traveller count, falling back
// to one when the config holds less.
func defaultTravellers(ctx context.Context, configured int) int {
	if configured >= 1 {
		return configured
	}
	logging.FromContext(ctx).Warn().Ctx(ctx).
		Int("configured", configured).
		Msg("defaults.travellers below 1, using 1")
	return 1
}

func nonNegativeInt(ctx context.Context, flag string, v int) int {
	if v < 0 {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("flag", flag).
			Int("value", v).
			Msg("negative value clamped to 0")
	}
	return estimate.ClampInt(v)
}
