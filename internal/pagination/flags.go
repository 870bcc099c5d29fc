package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults and limits.
const (
	DefaultPageSize  = 10
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultPage      = 1
	MinPage          = 1
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// PaginationParams holds page selection and sort settings.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// SortField is the field name to sort by ("name", "email"). Empty means unsorted.
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks the values supplied on the command line.
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.SortOrder != "" && p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// Normalize returns a copy with out-of-range values replaced: a page below 1
// becomes 1 and a page size below 1 becomes DefaultPageSize.
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page < MinPage {
		p.Page = DefaultPage
	}
	if p.PageSize < MinPageSize {
		p.PageSize = DefaultPageSize
	}
	return p
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "email:desc". An empty string means unsorted.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// GetEffectiveOffset returns the index of the first row on the page.
func (p PaginationParams) GetEffectiveOffset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// CalculateTotalPages returns how many pages totalResults rows fill.
// Zero rows means zero pages.
func (p PaginationParams) CalculateTotalPages(totalResults int) int {
	if totalResults <= 0 {
		return 0
	}
	size := p.Normalize().PageSize
	pages := totalResults / size
	if totalResults%size > 0 {
		pages++
	}
	return pages
}

// Bounds returns the half-open slice range [start, end) of the page within
// total rows. Both are clamped to total, so a page past the end gives
// start == end.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) Bounds(total int) (start, end int) {
	if total < 0 {
		total = 0
	}
	start = min(p.GetEffectiveOffset(), total)
	end = min(start+p.Normalize().PageSize, total)
	return start, end
}
