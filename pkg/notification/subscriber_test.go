package notification

import (
	"context"
	"testing"

	"github.com/klokku/backoffice/internal/event_bus"
	"github.com/klokku/backoffice/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	t.Run("should notify the user who changed a budget", func(t *testing.T) {
		// given
		service, _, ctx := setup(t)
		bus := event_bus.NewEventBus()
		unsubscribe := Subscribe(bus, service)
		defer unsubscribe()

		// when
		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetStatusChangedType, event_bus.BudgetStatusChanged{
			BudgetId:   "ORC001",
			ClientName: "Empresa XYZ Inc",
			From:       "pendente",
			To:         "aprovado",
		}))

		// then
		require.NoError(t, err)
		notifications, err := service.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, KindSuccess, notifications[0].Kind)
		assert.Equal(t, "Orçamento aprovado", notifications[0].Title)
		assert.Contains(t, notifications[0].Message, "ORC001")

		otherUser := user.WithUser(context.Background(), user.User{Id: 2})
		others, err := service.List(otherUser, false)
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("should map events to notification kinds", func(t *testing.T) {
		service, _, ctx := setup(t)
		bus := event_bus.NewEventBus()
		Subscribe(bus, service)

		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetCreatedType,
			event_bus.BudgetCreated{BudgetId: "ORC006", ClientName: "Padaria", Value: "R$ 100,00"})))
		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetStatusChangedType,
			event_bus.BudgetStatusChanged{BudgetId: "ORC006", From: "pendente", To: "rejeitado"})))
		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ClientRegisteredType,
			event_bus.ClientRegistered{ClientId: 1, Name: "Pedro"})))
		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ClientRegisteredType,
			event_bus.ClientRegistered{ClientId: 1, Name: "Pedro", Updated: true})))

		notifications, err := service.List(ctx, false)
		require.NoError(t, err)
		kinds := make([]Kind, 0, len(notifications))
		titles := make([]string, 0, len(notifications))
		for _, n := range notifications {
			kinds = append(kinds, n.Kind)
			titles = append(titles, n.Title)
		}
		assert.Equal(t, []Kind{KindSuccess, KindSuccess, KindWarning, KindInfo}, kinds)
		assert.Equal(t, []string{"Cadastro atualizado", "Cliente cadastrado", "Orçamento rejeitado", "Orçamento criado"}, titles)
	})

	t.Run("should fail the publish when the event has no user", func(t *testing.T) {
		service, _, _ := setup(t)
		bus := event_bus.NewEventBus()
		Subscribe(bus, service)

		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.ClientRegisteredType,
			event_bus.ClientRegistered{Name: "Pedro"}))

		assert.ErrorIs(t, err, user.ErrNoUser)
	})

	t.Run("should stop notifying after unsubscribe", func(t *testing.T) {
		service, _, ctx := setup(t)
		bus := event_bus.NewEventBus()
		Subscribe(bus, service)()

		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ClientRegisteredType,
			event_bus.ClientRegistered{Name: "Pedro"})))

		notifications, err := service.List(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})
}
