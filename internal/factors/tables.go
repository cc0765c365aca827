package factors

// TreeAbsorptionKgPerYear is the kg CO2e one planted tree absorbs per year.
// Tree-offset counts are always ceil(total_kg / TreeAbsorptionKgPerYear).
const TreeAbsorptionKgPerYear = 150.0

// Transport factors, kg CO2e per passenger-km.
const (
	FlightKgPerKm      = 0.255
	CarKgPerKm         = 0.17
	ElectricCarKgPerKm = 0.05
	HybridCarKgPerKm   = 0.10
	BusKgPerKm         = 0.089
	TrainKgPerKm       = 0.041
	FerryKgPerKm       = 0.19
	MotorbikeKgPerKm   = 0.11
	ScooterKgPerKm     = 0.07
	TaxiKgPerKm        = 0.21
)

// Flight cabin class multipliers.
const (
	EconomyMultiplier        = 1.0
	PremiumEconomyMultiplier = 1.5
	BusinessMultiplier       = 2.5
	FirstMultiplier          = 4.0
)

// Subtype keys that the estimation functions branch on.
const (
	SubtypeFlight     = "flight"
	ClassEconomy      = "economy"
	SubtypeLodge      = "lodge"
	SubtypeMobileCamp = "mobile_camp"
)

// row is the unexported table entry; exported access goes through Lookup/All.
type row struct {
	key   string
	value float64
}

// Tables are ordered slices so listings are stable.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	transportRows = []row{
		{SubtypeFlight, FlightKgPerKm},
		{"car", CarKgPerKm},
		{"electric_car", ElectricCarKgPerKm},
		{"hybrid_car", HybridCarKgPerKm},
		{"bus", BusKgPerKm},
		{"train", TrainKgPerKm},
		{"ferry", FerryKgPerKm},
		{"motorbike", MotorbikeKgPerKm},
		{"scooter", ScooterKgPerKm},
		{"taxi", TaxiKgPerKm},
	}

	flightClassRows = []row{
		{ClassEconomy, EconomyMultiplier},
		{"premium_economy", PremiumEconomyMultiplier},
		{"business", BusinessMultiplier},
		{"first", FirstMultiplier},
	}

	accommodationRows = []row{
		{"hotel", 14.4},
		{"rental", 8.5},
		{"serviced_apartment", 10.2},
		{"cruise", 250},
		{"river_cruise", 150},
	}

	adventureRows = []row{
		{"4x4", 0.35},
		{"boat", 0.15},
		{"helicopter", 3.5},
		{"hot_air_balloon", 0.5},
		{SubtypeLodge, 12},
		{SubtypeMobileCamp, 8},
		{"private_plane", 1.2},
		{"quad", 0.25},
		{"scooter", 0.08},
	}

	// aliases map alternate spellings seen in forms to canonical keys.
	aliases = map[Category]map[string]string{
		CategoryTransport: {
			"coach":         "bus",
			"plane":         SubtypeFlight,
			"electric":      "electric_car",
			"hybrid":        "hybrid_car",
			"motorcycle":    "motorbike",
			"electric_auto": "electric_car",
		},
		CategoryFlightClass: {
			"premium": "premium_economy",
		},
		CategoryAccommodation: {
			"airbnb":    "rental",
			"apartment": "serviced_apartment",
		},
		CategoryAdventure: {
			"4x4_vehicle_transport": "4x4",
			"balloon":               "hot_air_balloon",
			"camp":                  SubtypeMobileCamp,
		},
	}
)

func rowsFor(c Category) []row {
	switch c {
	case CategoryTransport:
		return transportRows
	case CategoryFlightClass:
		return flightClassRows
	case CategoryAccommodation:
		return accommodationRows
	case CategoryAdventure:
		return adventureRows
	default:
		return nil
	}
}

func unitFor(c Category, key string) Unit {
	switch c {
	case CategoryTransport:
		return UnitPassengerKm
	case CategoryFlightClass:
		return UnitMultiplier
	case CategoryAccommodation:
		return UnitGuestNight
	case CategoryAdventure:
		if IsLodging(key) {
			return UnitParticipantNight
		}
		return UnitParticipantKm
	default:
		return ""
	}
}
