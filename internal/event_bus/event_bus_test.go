package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call handlers in subscription order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var calls []int
		for i := 1; i <= 5; i++ {
			i := i
			bus.Subscribe("test", func(e Event) error {
				calls = append(calls, i)
				return nil
			})
		}

		// when
		err := bus.Publish(NewEvent(context.Background(), "test", "payload"))

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
	})

	t.Run("should keep calling handlers after a failure and join errors", func(t *testing.T) {
		// given
		bus := NewEventBus()
		failure := errors.New("boom")
		called := false
		bus.Subscribe("test", func(e Event) error { return failure })
		bus.Subscribe("test", func(e Event) error { panic("handler panic") })
		bus.Subscribe("test", func(e Event) error {
			called = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), "test", nil))

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.True(t, called)
	})

	t.Run("should not deliver events with cancelled context", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		bus.Subscribe("test", func(e Event) error {
			called = true
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := bus.Publish(NewEvent(ctx, "test", nil))

		// then
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should stop delivering after unsubscribe", func(t *testing.T) {
		// given
		bus := NewEventBus()
		count := 0
		unsubscribe := bus.Subscribe("test", func(e Event) error {
			count++
			return nil
		})
		require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

		// when
		unsubscribe()
		require.NoError(t, bus.Publish(NewEvent(context.Background(), "test", nil)))

		// then
		assert.Equal(t, 1, count)
	})
}

func TestSubscribeTyped(t *testing.T) {
	// given
	bus := NewEventBus()
	var received []BudgetStatusChanged
	SubscribeTyped(bus, BudgetStatusChangedType, func(e EventT[BudgetStatusChanged]) error {
		received = append(received, e.Data)
		return nil
	})

	// when
	require.NoError(t, bus.Publish(NewEvent(context.Background(), BudgetStatusChangedType, "wrong payload")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), BudgetStatusChangedType, nil)))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), BudgetStatusChangedType,
		BudgetStatusChanged{BudgetId: "ORC001", From: "pendente", To: "aprovado"})))

	// then
	require.Len(t, received, 1)
	assert.Equal(t, "ORC001", received[0].BudgetId)
	assert.Equal(t, "aprovado", received[0].To)
}
