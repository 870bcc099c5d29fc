package pagination

// PaginationMeta contains metadata about a page of results.
// FirstItem and LastItem are 1-based positions; both are 0 on an empty page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
	FirstItem   int  `json:"first_item"`
	LastItem    int  `json:"last_item"`
}

// NewPaginationMeta creates pagination metadata from parameters and total count.
func NewPaginationMeta(params PaginationParams, totalCount int) PaginationMeta {
	n := params.Normalize()
	totalPages := n.CalculateTotalPages(totalCount)

	start, end := n.Bounds(totalCount)
	first, last := 0, 0
	if end > start {
		first, last = start+1, end
	}

	return PaginationMeta{
		CurrentPage: n.Page,
		PageSize:    n.PageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: n.Page > 1,
		HasNext:     n.Page < totalPages,
		FirstItem:   first,
		LastItem:    last,
	}
}
