package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort directions. An empty field keeps the input order.
const (
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortField = ""
	DefaultSortOrder = SortOrderAsc
)

// Validation errors.
var (
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'co2:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params selects a sorted window of a listing, either by offset and limit
// or by page and page size. A zero Limit means no limit.
type Params struct {
	Limit     int
	Offset    int
	Page      int
	PageSize  int
	SortField string
	SortOrder string
}

// NewParams returns Params that list everything in input order.
func NewParams() Params {
	return Params{SortField: DefaultSortField, SortOrder: DefaultSortOrder}
}

// Validate rejects negative values and mixed offset and page modes.
// Every problem is reported, not just the first.
func (p Params) Validate() error {
	var errs []error
	for name, v := range map[string]int{"limit": p.Limit, "offset": p.Offset, "page": p.Page, "page-size": p.PageSize} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("--%s cannot be negative", name))
		}
	}
	switch {
	case p.Page > 0 && p.Offset > 0:
		errs = append(errs, errors.New("--page and --offset are mutually exclusive"))
	case p.Page > 0 && p.PageSize == 0:
		errs = append(errs, errors.New("--page requires --page-size"))
	case p.Page == 0 && p.PageSize > 0:
		errs = append(errs, errors.New("--page-size requires --page"))
	}
	return errors.Join(errs...)
}

// ParseSort splits "field" or "field:order". Both parts are trimmed and
// lower-cased; the order defaults to ascending.
//
//nolint:nonamedreturns // Named returns document the two strings.
func ParseSort(raw string) (field, order string, err error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}
	if strings.Count(raw, ":") > 1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, raw)
	}

	rawField, rawOrder, hasOrder := strings.Cut(raw, ":")
	field = strings.ToLower(strings.TrimSpace(rawField))
	order = DefaultSortOrder
	if hasOrder {
		order = strings.ToLower(strings.TrimSpace(rawOrder))
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// OffsetLimit returns the effective offset and limit for either mode.
//
//nolint:nonamedreturns // Named returns document the two ints.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.Page > 0 {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p. Page requests past the
// end are capped to the last page; offsets past the end return nothing.
func Apply[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.OffsetLimit()
	if p.Page > 0 && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 {
		end = min(offset+limit, len(items))
	}
	return items[offset:end]
}
