// Package orderrepo provides the in-memory implementation of the order
// repository. Storage is volatile by design: the service owns the
// authoritative order collection for its lifetime and does not persist it.
//
// Locking discipline: a single RWMutex guards the map. Reads proceed
// concurrently with other reads; every mutation holds the exclusive lock for
// its whole critical section, so updates to the same order are serialized and
// no caller can observe a partially-updated aggregate. The lock is never held
// across external calls.
package orderrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// entry pairs a stored aggregate with its insertion sequence number.
// The sequence is the tie-breaker for orders created at the same instant.
type entry struct {
	aggregate *order.Order
	seq       uint64
}

// Repository is an in-memory order store. It hands out clones only; stored
// aggregates are never aliased outside the critical section.
// The zero value is not usable; create instances via NewRepository.
type Repository struct {
	mu      sync.RWMutex
	orders  map[string]*entry
	nextSeq uint64
}

// NewRepository creates an empty in-memory order repository.
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[string]*entry),
	}
}

// Add stores a new order aggregate under the exclusive lock.
//
// The aggregate is validated before insertion as a defensive invariant: the
// store rejects any attempt to persist an order that bypassed its
// constructor. Ids are freshly generated by callers, so a duplicate id means
// a programming error and is rejected rather than overwritten.
func (r *Repository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	key := aggregate.ID().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[key]; exists {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("order %s already exists", key))
	}

	r.orders[key] = &entry{
		aggregate: aggregate.Clone(),
		seq:       r.nextSeq,
	}
	r.nextSeq++

	return nil
}

// Update applies mutate to the stored aggregate inside the exclusive
// critical section.
//
// The mutation is all-or-nothing: mutate runs against a working copy, and
// only a successful result replaces the stored aggregate. A failed mutation
// leaves the stored order byte-for-byte unchanged. Returns a clone of the
// committed aggregate.
func (r *Repository) Update(_ context.Context, id kernel.UUID, mutate func(*order.Order) error) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}

	work := e.aggregate.Clone()
	if err := mutate(work); err != nil {
		return nil, err
	}

	e.aggregate = work
	return work.Clone(), nil
}

// Get retrieves a clone of an order by id. Returns an ObjectNotFoundError if
// the id is absent.
func (r *Repository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}

	return e.aggregate.Clone(), nil
}

// List returns a page of order clones sorted by creation time descending,
// newest first. Orders created at the same instant keep their insertion
// order (stable sort). The second return value is the total number of stored
// orders before pagination.
//
// Negative limit or offset values are clamped to zero; an offset past the
// end of the collection and a limit of zero both yield an empty page rather
// than an error.
func (r *Repository) List(_ context.Context, limit, offset int) ([]*order.Order, int, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*entry, 0, len(r.orders))
	for _, e := range r.orders {
		entries = append(entries, e)
	}

	// Restore insertion order first so the stable sort below breaks
	// creation-time ties by insertion.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].aggregate.CreatedAt().After(entries[j].aggregate.CreatedAt())
	})

	total := len(entries)

	if offset >= total {
		return []*order.Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*order.Order, 0, end-offset)
	for _, e := range entries[offset:end] {
		page = append(page, e.aggregate.Clone())
	}

	return page, total, nil
}

// CountByStatus returns the number of stored orders per status.
func (r *Repository) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[order.Status]int)
	for _, e := range r.orders {
		counts[e.aggregate.Status()]++
	}

	return counts, nil
}
