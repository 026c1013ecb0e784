package http

import (
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
)

// CreateOrderRequest is the POST /orders body.
type CreateOrderRequest struct {
	CustomerID string   `json:"customerId" validate:"required"`
	Items      []string `json:"items"      validate:"required,min=1"`
}

// UpdateOrderRequest is the PATCH /orders/:id body. A nil Status requests a
// touch-only update.
type UpdateOrderRequest struct {
	Status *string `json:"status"`
}

// OrderResponse is the wire shape of a single order.
type OrderResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	CustomerID string    `json:"customerId"`
	Items      []string  `json:"items"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OrderListResponse is a page of orders with its paging metadata. Total
// counts all stored orders, not the page.
type OrderListResponse struct {
	Items  []OrderResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ServiceInfoResponse is the GET / payload.
type ServiceInfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is the health and readiness probe payload.
type HealthResponse struct {
	Status string `json:"status"`
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:         aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		CustomerID: aggregate.CustomerID(),
		Items:      aggregate.Items(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}

func listToResponse(page queries.ListOrdersQueryResponse) OrderListResponse {
	items := make([]OrderResponse, len(page.Orders))
	for i, aggregate := range page.Orders {
		items[i] = orderToResponse(aggregate)
	}

	return OrderListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
