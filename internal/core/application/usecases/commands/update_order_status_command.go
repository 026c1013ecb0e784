package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand or NewTouchOrderCommand",
	)
)

// UpdateOrderStatusCommand represents a request to update an order. The
// status change is optional: a command built via NewTouchOrderCommand only
// refreshes the order's updatedAt timestamp, which mirrors a PATCH body
// without a status field.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, order.Paid)
//	if err != nil {
//	    return err
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	newStatus       order.Status
	statusRequested bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command requesting a status
// transition. Validates that the order id is valid and the target status is
// a real lifecycle status; whether the transition itself is legal is decided
// against the stored aggregate.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, newStatus order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		newStatus:       newStatus,
		statusRequested: true,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		newStatus.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// NewTouchOrderCommand creates a command requesting no status change.
// Handling it refreshes the order's updatedAt timestamp only.
func NewTouchOrderCommand(orderID kernel.UUID) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the id of the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested target status. The second return value is
// false when no status change was requested.
func (c UpdateOrderStatusCommand) Status() (order.Status, bool) {
	return c.newStatus, c.statusRequested
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
