package pagination

// Meta describes the window returned by Apply, in page terms, so JSON
// consumers can page through item listings either way.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta builds metadata for params over total items. An offset/limit
// window is reported as the page its offset falls in; no limit means a
// single page holding everything.
func NewMeta(params Params, total int) Meta {
	offset, size := params.OffsetLimit()
	if size == 0 {
		size = total
	}

	m := Meta{CurrentPage: 1, PageSize: size, TotalItems: total}
	if size > 0 {
		m.CurrentPage = offset/size + 1
		m.TotalPages = (total + size - 1) / size
	}
	m.HasPrevious = m.CurrentPage > 1
	m.HasNext = m.CurrentPage < m.TotalPages
	return m
}
