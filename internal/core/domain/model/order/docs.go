// Package order provides domain entities and business logic for order
// management. It implements the Order aggregate root with lifecycle
// management and status transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, a customer, and at least one item
//   - Order status follows a strictly linear workflow:
//     Pending -> Paid -> Shipped -> Delivered
//   - No transition may be skipped, reversed, or repeated
//   - Timestamps are monotonically non-decreasing; updatedAt is never before createdAt
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced regardless of how the aggregate is reached.
package order
