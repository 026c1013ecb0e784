package orderrepo_test

import (
	"sync"
	"testing"
	"time"

	"orders/internal/adapters/out/memory/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewOrder(t *testing.T, customerID string, items []string, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, items, createdAt)
	require.NoError(t, err)
	return o
}

func TestRepository_Add(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("should store a valid order", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		o := mustNewOrder(t, "c1", []string{"i1"}, now)

		require.NoError(t, repo.Add(t.Context(), o))

		got, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.True(t, got.IsEqual(o))
		assert.Equal(t, "c1", got.CustomerID())
		assert.Equal(t, []string{"i1"}, got.Items())
		assert.Equal(t, order.Pending, got.Status())
	})

	t.Run("should reject order that bypassed the constructor", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		var o order.Order

		err := repo.Add(t.Context(), &o)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject duplicate ids", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		o := mustNewOrder(t, "c1", []string{"i1"}, now)

		require.NoError(t, repo.Add(t.Context(), o))
		err := repo.Add(t.Context(), o)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("stored state is isolated from the caller's aggregate", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		o := mustNewOrder(t, "c1", []string{"i1"}, now)
		require.NoError(t, repo.Add(t.Context(), o))

		// Mutating the caller's reference must not affect the store.
		require.NoError(t, o.ChangeStatus(order.Paid, now.Add(time.Minute)))

		got, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Pending, got.Status())
	})
}

func TestRepository_Get(t *testing.T) {
	t.Run("should return ObjectNotFoundError for unknown id", func(t *testing.T) {
		repo := orderrepo.NewRepository()

		_, err := repo.Get(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject zero-value id", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		var id kernel.UUID

		_, err := repo.Get(t.Context(), id)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("returned clones are independent", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		o := mustNewOrder(t, "c1", []string{"i1"}, now)
		require.NoError(t, repo.Add(t.Context(), o))

		first, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		require.NoError(t, first.ChangeStatus(order.Paid, now.Add(time.Minute)))

		second, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Pending, second.Status())
	})
}

func TestRepository_Update(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("should commit a successful mutation", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		o := mustNewOrder(t, "c1", []string{"i1"}, now)
		require.NoError(t, repo.Add(t.Context(), o))

		updated, err := repo.Update(t.Context(), o.ID(), func(stored *order.Order) error {
			return stored.ChangeStatus(order.Paid, now.Add(time.Minute))
		})

		require.NoError(t, err)
		assert.Equal(t, order.Paid, updated.Status())

		got, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Paid, got.Status())
		assert.Equal(t, now.Add(time.Minute), got.UpdatedAt())
	})

	t.Run("failed mutation leaves stored order unchanged", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		o := mustNewOrder(t, "c1", []string{"i1"}, now)
		require.NoError(t, repo.Add(t.Context(), o))

		_, err := repo.Update(t.Context(), o.ID(), func(stored *order.Order) error {
			return stored.ChangeStatus(order.Delivered, now.Add(time.Minute))
		})

		require.ErrorIs(t, err, order.ErrInvalidStatusTransition)

		got, getErr := repo.Get(t.Context(), o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.Pending, got.Status())
		assert.Equal(t, now, got.UpdatedAt())
	})

	t.Run("should return ObjectNotFoundError for unknown id", func(t *testing.T) {
		repo := orderrepo.NewRepository()

		_, err := repo.Update(t.Context(), kernel.NewUUID(), func(*order.Order) error {
			return nil
		})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("concurrent updates to the same id are serialized", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		o := mustNewOrder(t, "c1", []string{"i1"}, now)
		require.NoError(t, repo.Add(t.Context(), o))

		const workers = 16

		var wg sync.WaitGroup
		results := make(chan error, workers)

		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(t.Context(), o.ID(), func(stored *order.Order) error {
					return stored.ChangeStatus(order.Paid, time.Now())
				})
				results <- err
			}()
		}

		wg.Wait()
		close(results)

		var succeeded, conflicted int
		for err := range results {
			switch {
			case err == nil:
				succeeded++
			default:
				require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
				conflicted++
			}
		}

		// Exactly one Pending -> Paid transition can win; every other
		// attempt must observe Paid and fail as a conflict.
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, conflicted)

		got, err := repo.Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Paid, got.Status())
	})
}

func TestRepository_List(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, repo *orderrepo.Repository, n int) []*order.Order {
		t.Helper()
		seeded := make([]*order.Order, 0, n)
		for i := range n {
			o := mustNewOrder(t, "c1", []string{"i1"}, base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, repo.Add(t.Context(), o))
			seeded = append(seeded, o)
		}
		return seeded
	}

	t.Run("should sort by creation time descending", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		seeded := seed(t, repo, 3)

		page, total, err := repo.List(t.Context(), 10, 0)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, page, 3)
		assert.True(t, page[0].IsEqual(seeded[2]))
		assert.True(t, page[1].IsEqual(seeded[1]))
		assert.True(t, page[2].IsEqual(seeded[0]))
	})

	t.Run("creation-time ties keep insertion order", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		first := mustNewOrder(t, "c1", []string{"i1"}, base)
		second := mustNewOrder(t, "c2", []string{"i2"}, base)
		require.NoError(t, repo.Add(t.Context(), first))
		require.NoError(t, repo.Add(t.Context(), second))

		page, _, err := repo.List(t.Context(), 10, 0)

		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.True(t, page[0].IsEqual(first))
		assert.True(t, page[1].IsEqual(second))
	})

	t.Run("should respect limit and offset", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		seeded := seed(t, repo, 5)

		page, total, err := repo.List(t.Context(), 2, 1)

		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page, 2)
		assert.True(t, page[0].IsEqual(seeded[3]))
		assert.True(t, page[1].IsEqual(seeded[2]))
	})

	t.Run("offset past the end yields an empty page, not an error", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		seed(t, repo, 3)

		page, total, err := repo.List(t.Context(), 1, 5)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, page)
	})

	t.Run("limit zero yields an empty page", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		seed(t, repo, 3)

		page, total, err := repo.List(t.Context(), 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, page)
	})

	t.Run("negative limit and offset are clamped", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		seed(t, repo, 3)

		page, total, err := repo.List(t.Context(), -1, -10)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, page)
	})

	t.Run("empty store lists cleanly", func(t *testing.T) {
		repo := orderrepo.NewRepository()

		page, total, err := repo.List(t.Context(), 10, 0)

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, page)
	})
}

func TestRepository_CountByStatus(t *testing.T) {
	t.Run("should count orders per status", func(t *testing.T) {
		repo := orderrepo.NewRepository()
		now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

		for range 2 {
			o := mustNewOrder(t, "c1", []string{"i1"}, now)
			require.NoError(t, repo.Add(t.Context(), o))
		}
		paid := mustNewOrder(t, "c2", []string{"i2"}, now)
		require.NoError(t, repo.Add(t.Context(), paid))
		_, err := repo.Update(t.Context(), paid.ID(), func(stored *order.Order) error {
			return stored.ChangeStatus(order.Paid, now.Add(time.Minute))
		})
		require.NoError(t, err)

		counts, err := repo.CountByStatus(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 2, counts[order.Pending])
		assert.Equal(t, 1, counts[order.Paid])
		assert.Zero(t, counts[order.Shipped])
	})
}

func TestRepository_ConcurrentReadsAndWrites(t *testing.T) {
	// Exercised with -race: mixed readers and writers on the same store.
	repo := orderrepo.NewRepository()
	now := time.Now().UTC()

	seeded := mustNewOrder(t, "c1", []string{"i1"}, now)
	require.NoError(t, repo.Add(t.Context(), seeded))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			o := mustNewOrder(t, "c2", []string{"i2"}, now.Add(time.Duration(i)*time.Millisecond))
			assert.NoError(t, repo.Add(t.Context(), o))
		}(i)
		go func() {
			defer wg.Done()
			_, _, err := repo.List(t.Context(), 10, 0)
			assert.NoError(t, err)
			_, err = repo.Get(t.Context(), seeded.ID())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, total, err := repo.List(t.Context(), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 9, total)
}
