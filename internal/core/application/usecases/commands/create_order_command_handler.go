package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders with a fresh id and initial Pending status, then emits
// a best-effort order.created event.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(repo, notifier)
//	cmd, _ := NewCreateOrderCommand("c1", []string{"i1"})
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	repo     ports.OrderRepository
	notifier ports.EventNotifier
	now      func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations.
func NewCreateOrderCommandHandler(repo ports.OrderRepository, notifier ports.EventNotifier) CreateOrderCommandHandler {
	return NewCreateOrderCommandHandlerWithClock(repo, notifier, time.Now)
}

// NewCreateOrderCommandHandlerWithClock creates a handler with an injectable
// clock for deterministic timestamps in tests.
func NewCreateOrderCommandHandlerWithClock(
	repo ports.OrderRepository,
	notifier ports.EventNotifier,
	now func() time.Time,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		repo:     repo,
		notifier: notifier,
		now:      now,
	}
}

// Handle processes the order creation command.
//
// Generates a fresh unique id, builds the aggregate in Pending status with
// createdAt == updatedAt, and stores it. Creation cannot conflict since ids
// are never reused. The order.created event fires only after the store
// mutation has committed; notification failure never affects the result.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), cmd.Items(), h.now())
	if err != nil {
		return nil, err
	}

	if err = h.repo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, ports.OrderEvent{
		Type:  ports.EventOrderCreated,
		Order: aggregate,
	})

	return aggregate, nil
}
