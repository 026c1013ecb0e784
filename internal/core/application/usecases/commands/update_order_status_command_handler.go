package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles order updates: an optional status
// transition plus the updatedAt refresh, committed atomically in the store's
// critical section.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(repo, notifier)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Paid)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidStatusTransition) {
//	    // the stored order was not in a state that allows Paid
//	}
type UpdateOrderStatusCommandHandler struct {
	repo     ports.OrderRepository
	notifier ports.EventNotifier
	now      func() time.Time
}

// NewUpdateOrderStatusCommandHandler creates a handler for order update
// operations.
func NewUpdateOrderStatusCommandHandler(repo ports.OrderRepository, notifier ports.EventNotifier) UpdateOrderStatusCommandHandler {
	return NewUpdateOrderStatusCommandHandlerWithClock(repo, notifier, time.Now)
}

// NewUpdateOrderStatusCommandHandlerWithClock creates a handler with an
// injectable clock for deterministic timestamps in tests.
func NewUpdateOrderStatusCommandHandlerWithClock(
	repo ports.OrderRepository,
	notifier ports.EventNotifier,
	now func() time.Time,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		repo:     repo,
		notifier: notifier,
		now:      now,
	}
}

// Handle processes the order update command.
//
// The lookup and mutation run inside the store's exclusive critical section,
// so concurrent updates to the same order are serialized: the second caller
// sees the first caller's committed status and an illegal follow-up
// transition fails with the conflict naming that pair. An absent status is
// not an error; the update only refreshes updatedAt.
//
// The order.updated event fires after the lock is released and only when the
// status actually changed value. By then the update has committed, so
// notification failures are logged downstream and never surfaced here.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var previousStatus order.Status

	updated, err := h.repo.Update(ctx, cmd.OrderID(), func(aggregate *order.Order) error {
		previousStatus = aggregate.Status()

		if newStatus, requested := cmd.Status(); requested {
			return aggregate.ChangeStatus(newStatus, h.now())
		}

		aggregate.Touch(h.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status() != previousStatus {
		h.notifier.Notify(ctx, ports.OrderEvent{
			Type:           ports.EventOrderUpdated,
			Order:          updated,
			PreviousStatus: previousStatus,
		})
	}

	return updated, nil
}
