package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// ListOrdersQueryResponse is a page of orders plus the paging metadata the
// API echoes back: the total number of stored orders before pagination and
// the clamped limit/offset that produced the page.
type ListOrdersQueryResponse struct {
	Orders []*order.Order
	Total  int
	Limit  int
	Offset int
}

// ListOrdersQueryHandler retrieves pages of orders sorted by creation time
// descending.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(repo)
//	page, err := handler.Handle(ctx, NewListOrdersQuery(10, 0))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("showing %d of %d orders\n", len(page.Orders), page.Total)
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(repo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo}
}

// Handle executes the listing. The page holds clones; the snapshot may be
// concurrently stale by the time it is returned.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	page, total, err := h.repo.List(ctx, query.Limit(), query.Offset())
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders: page,
		Total:  total,
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}, nil
}
