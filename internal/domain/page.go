package domain

import (
	"fmt"
	"math"
)

// Defaults applied when a list request omits page or limit.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// MaxPage is the largest page whose row offset fits in an int at MaxPageLimit.
const MaxPage = math.MaxInt/MaxPageLimit + 1

// SortField names a column a restaurant listing can be ordered by.
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortName      SortField = "name"
)

// SortOrder is the direction of a listing.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// PaginationParams carries page/limit/sort values for GET /restaurants from
// the HTTP layer down to the repo layer. Page is 1-indexed and Limit is capped
// at MaxPageLimit by NewPaginationParams. A zero Sort or Order means
// created_at ascending.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
	// Sort is the column rows are ordered by; id always breaks ties.
	Sort SortField
	// Order is the sort direction.
	Order SortOrder
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil or non-positive values fall back to page=1 and DefaultPageLimit.
// A page above MaxPage is rejected with ErrValidation.
func NewPaginationParams(page, limit *int) (PaginationParams, error) {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		if *page > MaxPage {
			return PaginationParams{}, fmt.Errorf("%w: page must be at most %d", ErrValidation, MaxPage)
		}
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p, nil
}

// WithSort returns a copy of p ordered by sort and order. Empty values keep
// the default; anything outside the known fields and directions is
// ErrValidation.
func (p PaginationParams) WithSort(sort, order string) (PaginationParams, error) {
	switch SortField(sort) {
	case "":
	case SortCreatedAt, SortName:
		p.Sort = SortField(sort)
	default:
		return PaginationParams{}, fmt.Errorf("%w: unknown sort %q (want created_at or name)", ErrValidation, sort)
	}

	switch SortOrder(order) {
	case "":
	case OrderAsc, OrderDesc:
		p.Order = SortOrder(order)
	default:
		return PaginationParams{}, fmt.Errorf("%w: unknown order %q (want asc or desc)", ErrValidation, order)
	}
	return p, nil
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
