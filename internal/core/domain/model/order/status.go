package order

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
)

// ErrInvalidStatusTransition classifies status changes that are not allowed
// by the order lifecycle. Use errors.Is against this sentinel; the concrete
// *InvalidStatusTransitionError carries the attempted from/to pair.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// InvalidStatusTransitionError reports a rejected status change, naming the
// attempted transition. The aggregate is left unchanged when this error is
// returned.
type InvalidStatusTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order status from %s to %s", e.From, e.To)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with strictly linear transitions:
//
//	Pending ──> Paid ──> Shipped ──> Delivered
//
// No skips, no reverse transitions, and no self-transitions are allowed.
// Delivered is the terminal state.
//
// Status is a value object that validates state transitions and provides the
// lowercase wire representation used by the HTTP API and events.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every newly created order.
	Pending

	// Paid indicates payment for the order has been received.
	Paid

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their wire
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Paid:      "paid",
		Shipped:   "shipped",
		Delivered: "delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Paid:      "paid",
		Shipped:   "shipped",
		Delivered: "delivered",
	}
}

// StatusFromString parses the lowercase wire representation of a status.
//
// Returns:
//   - the matching Status for "pending", "paid", "shipped", or "delivered"
//   - a ValueIsInvalidError for any other input, including "unknown"
//
// Matching is case-sensitive by design: the API contract only ever emits
// lowercase statuses.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Paid, Shipped, Delivered.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire representation of the status.
//
// Returns:
//   - "pending", "paid", "shipped", or "delivered" for valid statuses
//   - "unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// next returns the only status reachable from s, or Unknown when s is
// terminal or invalid.
func (s Status) next() Status {
	switch s {
	case Pending:
		return Paid
	case Shipped:
		return Delivered
	case Paid:
		return Shipped
	default:
		return Unknown
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// target. Only the single next step in the linear workflow is allowed;
// self-transitions are rejected.
func (s Status) CanTransitionTo(target Status) bool {
	return s.next() == target && target != Unknown
}

// TransitionTo validates and performs a lifecycle transition.
//
// Valid transitions:
//   - Pending -> Paid
//   - Paid -> Shipped
//   - Shipped -> Delivered
//
// Every other (from, to) pair, including from == to, yields an
// *InvalidStatusTransitionError naming the attempted pair.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (Unknown, error) if the transition is not allowed
//
// This method is used by Order.ChangeStatus to enforce the state machine.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &InvalidStatusTransitionError{From: s, To: target}
	}
	return target, nil
}
