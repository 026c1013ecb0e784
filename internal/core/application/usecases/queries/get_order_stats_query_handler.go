package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// GetOrderStatsQueryHandler counts stored orders per lifecycle status.
type GetOrderStatsQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderStatsQueryHandler creates a handler for order stats queries.
func NewGetOrderStatsQueryHandler(repo ports.OrderRepository) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{repo: repo}
}

// Handle executes the count. Statuses with no orders are absent from the
// returned map.
func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (map[order.Status]int, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.repo.CountByStatus(ctx)
}
