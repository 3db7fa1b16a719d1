package notification

import (
	"fmt"

	"github.com/klokku/backoffice/internal/event_bus"
	"github.com/klokku/backoffice/pkg/budget"
)

// Subscribe turns domain events into notifications for the user who triggered them.
// The returned function removes the subscriptions.
func Subscribe(eventBus *event_bus.EventBus, service Service) (unsubscribe func()) {
	unsubscribers := []func(){
		event_bus.SubscribeTyped(eventBus, event_bus.BudgetCreatedType,
			func(e event_bus.EventT[event_bus.BudgetCreated]) error {
				_, err := service.Notify(e.Context(), KindInfo,
					"Orçamento criado",
					fmt.Sprintf("Orçamento %s para %s no valor de %s.", e.Data.BudgetId, e.Data.ClientName, e.Data.Value))
				return err
			}),
		event_bus.SubscribeTyped(eventBus, event_bus.BudgetStatusChangedType,
			func(e event_bus.EventT[event_bus.BudgetStatusChanged]) error {
				kind, title := KindInfo, "Status do orçamento alterado"
				switch budget.Status(e.Data.To) {
				case budget.StatusApproved:
					kind, title = KindSuccess, "Orçamento aprovado"
				case budget.StatusRejected:
					kind, title = KindWarning, "Orçamento rejeitado"
				}
				_, err := service.Notify(e.Context(), kind, title,
					fmt.Sprintf("Orçamento %s de %s: %s → %s.", e.Data.BudgetId, e.Data.ClientName, e.Data.From, e.Data.To))
				return err
			}),
		event_bus.SubscribeTyped(eventBus, event_bus.ClientRegisteredType,
			func(e event_bus.EventT[event_bus.ClientRegistered]) error {
				title := "Cliente cadastrado"
				message := fmt.Sprintf("%s foi cadastrado com sucesso.", e.Data.Name)
				if e.Data.Updated {
					title = "Cadastro atualizado"
					message = fmt.Sprintf("Os dados de %s foram atualizados.", e.Data.Name)
				}
				_, err := service.Notify(e.Context(), KindSuccess, title, message)
				return err
			}),
	}

	return func() {
		for _, u := range unsubscribers {
			u()
		}
	}
}
