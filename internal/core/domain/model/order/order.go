package order

import (
	"errors"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method. This ensures all orders
	// are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order. It is the aggregate root that manages
// the order lifecycle from creation through payment and shipping to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference a non-empty customer id
//   - Must contain at least one non-blank item identifier
//   - Status transitions follow the strictly linear lifecycle
//   - updatedAt is never before createdAt
//   - Can only be created through the NewOrder constructor
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. The store hands out clones only,
// so mutating a returned Order never affects stored state.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID string

	// items holds the ordered sequence of item identifiers
	items []string

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is the instant the order was created (UTC)
	createdAt time.Time

	// updatedAt is the instant of the last committed mutation (UTC)
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// to create a valid Order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerID: The ordering customer's id (must be non-blank)
//   - items: Item identifiers; blank entries are dropped, at least one must remain
//   - now: Creation instant; stored as both createdAt and updatedAt in UTC
//
// Returns:
//   - *Order: The created order in Pending status if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, customerID string, items []string, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	now = now.UTC()
	o.createdAt = now
	o.updatedAt = now

	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder. This prevents bypassing validation by directly instantiating the
// struct, and is called by the store before persisting an aggregate.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the id of the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns a copy of the ordered item identifiers.
// The returned slice is owned by the caller.
func (o *Order) Items() []string {
	items := make([]string, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation instant of the order (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the instant of the last committed mutation (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to a new lifecycle status.
//
// The transition is validated against the linear state machine; an invalid
// transition returns an *InvalidStatusTransitionError naming the attempted
// from/to pair and leaves the order completely unchanged. On success the
// status and updatedAt are modified together, so no observer can see one
// without the other.
//
// Returns:
//   - nil on a successful transition
//   - error if the target status is invalid or the transition is not allowed
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Touch refreshes updatedAt without changing any other field. Used for
// updates that request no status change.
func (o *Order) Touch(now time.Time) {
	o.touch(now)
}

// Clone returns a deep copy of the order. The store returns clones so
// handlers never hold references into stored state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}

	clone := *o
	clone.items = make([]string, len(o.items))
	copy(clone.items, o.items)
	return &clone
}

// touch advances updatedAt, keeping it monotonically non-decreasing.
func (o *Order) touch(now time.Time) {
	now = now.UTC()
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the ordering customer's id.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

// setItems validates and sets the order's item identifiers.
// Blank entries are dropped; at least one item must remain.
// This is a private method used only during construction.
func (o *Order) setItems(items []string) error {
	filtered := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			filtered = append(filtered, trimmed)
		}
	}

	if len(filtered) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	o.items = filtered
	return nil
}
