// Package ports defines the contracts between the application core and its
// adapters.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the storage contract for order aggregates.
//
// Implementations own the authoritative order collection and its locking
// discipline. Aggregates cross the boundary as clones in both directions, so
// callers never alias stored state.
type OrderRepository interface {
	// Add stores a new order aggregate. The order must be valid; ids are
	// freshly generated so no conflict is possible on creation.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update applies mutate to the stored aggregate inside the store's
	// exclusive critical section, serializing concurrent updates to the
	// same id. If mutate returns an error nothing is changed. Returns a
	// clone of the committed aggregate, or an ObjectNotFoundError if the
	// id is absent.
	Update(ctx context.Context, id kernel.UUID, mutate func(*order.Order) error) (*order.Order, error)

	// Get retrieves a clone of an order by its unique identifier.
	// Returns an ObjectNotFoundError if the id is absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns a page of order clones sorted by creation time
	// descending (ties broken by insertion order), along with the total
	// number of stored orders before pagination. Negative limit or offset
	// values are clamped; an offset past the end yields an empty page.
	List(ctx context.Context, limit, offset int) ([]*order.Order, int, error)

	// CountByStatus returns the number of stored orders per status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
