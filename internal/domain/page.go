package domain

import "fmt"

// Defaults applied by the HTTP layer when the query string omits page or pageSize.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PaginationParams carries page/pageSize values from the HTTP layer to the repo layer.
// Page is 1-indexed.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// PageSize is the maximum number of items to return.
	PageSize int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to page=1, pageSize=10. Values below one are rejected
// with ErrValidation instead of being clamped, so page-count arithmetic never
// divides by zero.
func NewPaginationParams(page, pageSize *int) (PaginationParams, error) {
	p := PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}
	if page != nil {
		if *page < 1 {
			return PaginationParams{}, fmt.Errorf("%w: page must be at least 1", ErrValidation)
		}
		p.Page = *page
	}
	if pageSize != nil {
		if *pageSize < 1 {
			return PaginationParams{}, fmt.Errorf("%w: pageSize must be at least 1", ErrValidation)
		}
		p.PageSize = *pageSize
	}
	return p, nil
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(total / PageSize). It returns 0 when there are no rows.
func (p PaginationParams) TotalPages(total int64) int {
	if p.PageSize < 1 || total <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((total + size - 1) / size)
}
