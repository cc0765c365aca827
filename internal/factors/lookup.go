package factors

import "strings"

// normalizeKey folds a user-entered subtype into table key form:
// trimmed, lower-cased, with spaces and hyphens replaced by underscores.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// find resolves aliases and returns the matching table row.
func find(c Category, subtype string) (row, bool) {
	key := normalizeKey(subtype)
	if alias, ok := aliases[c][key]; ok {
		key = alias
	}
	for _, r := range rowsFor(c) {
		if r.key == key {
			return r, true
		}
	}
	return row{key: key}, false
}

// Canonical returns the table key a subtype resolves to within a category,
// following aliases. The second result is false if no row matches.
func Canonical(c Category, subtype string) (string, bool) {
	r, ok := find(c, subtype)
	return r.key, ok
}

// Lookup returns the factor for a subtype in the given category.
// The bool result is false when the subtype is not in the table; callers
// treat that as a zero contribution.
func Lookup(c Category, subtype string) (Factor, bool) {
	r, ok := find(c, subtype)
	if !ok {
		return Factor{}, false
	}
	return Factor{Category: c, Subtype: r.key, Value: r.value, Unit: unitFor(c, r.key)}, true
}

// Value is Lookup without the metadata: the coefficient, or 0 and false.
func Value(c Category, subtype string) (float64, bool) {
	f, ok := Lookup(c, subtype)
	return f.Value, ok
}

// FlightClassMultiplier returns the cabin multiplier for a class name.
// An empty class means economy.
func FlightClassMultiplier(class string) (float64, bool) {
	if strings.TrimSpace(class) == "" {
		return EconomyMultiplier, true
	}
	return Value(CategoryFlightClass, class)
}

// IsLodging reports whether an adventure subtype is billed per night
// instead of per km.
func IsLodging(subtype string) bool {
	key, _ := Canonical(CategoryAdventure, subtype)
	return key == SubtypeLodge || key == SubtypeMobileCamp
}

// All returns a copy of every row in a category's table, in display order.
func All(c Category) []Factor {
	rows := rowsFor(c)
	out := make([]Factor, 0, len(rows))
	for _, r := range rows {
		out = append(out, Factor{Category: c, Subtype: r.key, Value: r.value, Unit: unitFor(c, r.key)})
	}
	return out
}

// Subtypes lists the canonical keys of a category.
func Subtypes(c Category) []string {
	rows := rowsFor(c)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.key)
	}
	return out
}
