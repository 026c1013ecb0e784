package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// Lifecycle event types published by the application.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
)

// OrderEvent describes a committed order lifecycle change.
// PreviousStatus is only meaningful for EventOrderUpdated.
type OrderEvent struct {
	Type           string
	Order          *order.Order
	PreviousStatus order.Status
}

// EventNotifier receives order lifecycle events for out-of-band propagation.
//
// Notification is a best-effort side channel: implementations must not block
// the caller, and delivery failures are logged, never surfaced. By the time
// Notify is called the order mutation has already committed, so there is
// nothing to roll back. Notify has no error return to keep commit success
// decoupled from notifier availability.
type EventNotifier interface {
	Notify(ctx context.Context, event OrderEvent)
}
