package queries

import (
	"errors"

	"orders/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// Pagination bounds for order listings.
const (
	// DefaultListLimit is used when the caller does not supply a limit.
	DefaultListLimit = 10

	// MaxListLimit caps the page size regardless of what the caller asks
	// for.
	MaxListLimit = 100
)

// ListOrdersQuery retrieves a page of orders, newest first.
//
// The constructor clamps rather than rejects out-of-range paging values, so
// any combination of limit and offset yields a well-defined (possibly empty)
// page:
//   - negative limit or offset is clamped to 0
//   - a limit above MaxListLimit is clamped to MaxListLimit
//   - a limit of 0 is honored and yields an empty page
//
// Example:
//
//	query := NewListOrdersQuery(25, 50)
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paging query with clamped bounds.
// Use DefaultListLimit for callers that did not specify a limit.
func NewListOrdersQuery(limit, offset int) ListOrdersQuery {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	return ListOrdersQuery{
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Limit returns the clamped page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the clamped number of entries to skip.
func (q ListOrdersQuery) Offset() int {
	return q.offset
}
