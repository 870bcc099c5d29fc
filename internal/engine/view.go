package engine

import (
	"github.com/rshade/rosterview/internal/pagination"
)

// Query is the user-controlled input of the derived view.
type Query struct {
	Search    string `json:"search"`
	SortField string `json:"sort_field,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// DefaultQuery returns the first page, unsorted and unfiltered.
func DefaultQuery() Query {
	return Query{
		SortOrder: SortAsc,
		Page:      pagination.DefaultPage,
		PageSize:  pagination.DefaultPageSize,
	}
}

// Params converts the query into pagination parameters.
func (q Query) Params() pagination.PaginationParams {
	return pagination.PaginationParams{
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortField: q.SortField,
		SortOrder: q.SortOrder,
	}.Normalize()
}

// DerivedView is one computed page of the dataset.
type DerivedView struct {
	// Rows is the visible page, at most Meta.PageSize long.
	Rows []Member `json:"members"`
	// TotalItems counts the filtered rows before slicing.
	TotalItems int                       `json:"total_items"`
	Meta       pagination.PaginationMeta `json:"page"`
	Query      Query                     `json:"query"`
}

//nolint:gochecknoglobals // Stateless default sorter shared by Compute.
var defaultSorter = NewMemberSorter()

// Compute derives the visible page: filter by search, then sort, then slice.
// It never modifies members, and a page past the end yields no rows.
func Compute(members []Member, q Query) DerivedView {
	return ComputeWith(defaultSorter, members, q)
}

// ComputeWith is Compute with an explicit Sorter.
func ComputeWith(sorter Sorter, members []Member, q Query) DerivedView {
	params := q.Params()
	q.Page, q.PageSize = params.Page, params.PageSize

	filtered := Filter(members, q.Search)
	ordered := sorter.Sort(filtered, q.SortField, q.SortOrder)

	start, end := params.Bounds(len(ordered))
	rows := make([]Member, end-start)
	copy(rows, ordered[start:end])

	return DerivedView{
		Rows:       rows,
		TotalItems: len(ordered),
		Meta:       pagination.NewPaginationMeta(params, len(ordered)),
		Query:      q,
	}
}
