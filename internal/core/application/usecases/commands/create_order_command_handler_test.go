package commands_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/memory/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventNotifier struct{ mock.Mock }

func (m *MockEventNotifier) Notify(ctx context.Context, event ports.OrderEvent) {
	m.Called(ctx, event)
}

var handlerNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return handlerNow }

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewRepository()
	notifier := new(MockEventNotifier)
	notifier.On("Notify", ctx, mock.MatchedBy(func(event ports.OrderEvent) bool {
		return event.Type == ports.EventOrderCreated && event.Order != nil
	})).Once()

	h := commands.NewCreateOrderCommandHandlerWithClock(repo, notifier, fixedClock)
	cmd, _ := commands.NewCreateOrderCommand("c1", []string{"i1"})

	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, "c1", created.CustomerID())
	assert.Equal(t, []string{"i1"}, created.Items())
	assert.Equal(t, created.CreatedAt(), created.UpdatedAt())
	assert.Equal(t, handlerNow, created.CreatedAt())

	// The aggregate must be retrievable from the store with identical data.
	stored, err := repo.Get(ctx, created.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsEqual(created))
	assert.Equal(t, created.CustomerID(), stored.CustomerID())
	assert.Equal(t, created.Items(), stored.Items())

	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_GeneratesFreshIDs(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewRepository()
	notifier := new(MockEventNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Twice()

	h := commands.NewCreateOrderCommandHandlerWithClock(repo, notifier, fixedClock)
	cmd, _ := commands.NewCreateOrderCommand("c1", []string{"i1"})

	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	second, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.False(t, first.ID().IsEqual(second.ID()))
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewRepository()
	notifier := new(MockEventNotifier)

	h := commands.NewCreateOrderCommandHandlerWithClock(repo, notifier, fixedClock)
	cmd := commands.CreateOrderCommand{} // not constructed properly

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)

	// No event may fire and the store must be untouched.
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	_, total, listErr := repo.List(ctx, 10, 0)
	require.NoError(t, listErr)
	assert.Zero(t, total)
}

func TestCreateOrderCommandHandler_Handle_InvalidItems(t *testing.T) {
	ctx := t.Context()
	repo := orderrepo.NewRepository()
	notifier := new(MockEventNotifier)

	h := commands.NewCreateOrderCommandHandlerWithClock(repo, notifier, fixedClock)
	// Items pass the command's shallow check but the aggregate rejects
	// them once blank entries are dropped.
	cmd, err := commands.NewCreateOrderCommand("c1", []string{" ", ""})
	require.NoError(t, err)

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
