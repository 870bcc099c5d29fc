// Package pagination provides page arithmetic and sort-flag parsing for the
// member derived view.
//
// This package contains:
//   - PaginationParams: page, page size and sort settings with validation
//   - ParseSort: "field[:asc|desc]" parsing for the --sort flag
//   - PaginationMeta: page metadata reported alongside a page of rows
//
// Pages are 1-based. A page past the end is valid and simply empty.
package pagination
