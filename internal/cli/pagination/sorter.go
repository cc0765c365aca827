package pagination

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rshade/eventcarbon/internal/estimate"
)

// Item sort fields.
const (
	FieldCreated = "created"
	FieldCO2     = "co2"
	FieldKind    = "kind"
	FieldLabel   = "label"
)

// ItemSorter orders estimate items.
type ItemSorter struct {
	validFields []string
}

// NewItemSorter creates an ItemSorter.
func NewItemSorter() *ItemSorter {
	return &ItemSorter{validFields: []string{FieldCO2, FieldCreated, FieldKind, FieldLabel}}
}

// IsValidField reports whether field can be sorted on.
func (s *ItemSorter) IsValidField(field string) bool {
	return slices.Contains(s.validFields, strings.ToLower(field))
}

// GetValidFields returns the sortable fields in alphabetical order.
func (s *ItemSorter) GetValidFields() []string {
	return slices.Clone(s.validFields)
}

// Sort returns a sorted copy of items. An empty field keeps the input order.
func (s *ItemSorter) Sort(items []estimate.Item, field, order string) ([]estimate.Item, error) {
	sorted := slices.Clone(items)
	if field == "" {
		return sorted, nil
	}
	field = strings.ToLower(field)
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.validFields, ", "))
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			i, j = j, i
		}
		switch field {
		case FieldCO2:
			return estimate.ComputeItemCO2(sorted[i]) < estimate.ComputeItemCO2(sorted[j])
		case FieldCreated:
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		case FieldKind:
			return sorted[i].Kind < sorted[j].Kind
		case FieldLabel:
			return sorted[i].DisplayLabel() < sorted[j].DisplayLabel()
		default:
			return false
		}
	})
	return sorted, nil
}
