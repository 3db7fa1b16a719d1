package app

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/backoffice/internal/config"
	"github.com/klokku/backoffice/internal/event_bus"
	"github.com/klokku/backoffice/internal/utils"
	"github.com/klokku/backoffice/pkg/budget"
	"github.com/klokku/backoffice/pkg/client"
	"github.com/klokku/backoffice/pkg/notification"
	"github.com/klokku/backoffice/pkg/registration"
	"github.com/klokku/backoffice/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	BudgetService  *budget.ServiceImpl
	BudgetRenderer *budget.CsvRendererImpl
	BudgetHandler  *budget.Handler

	ClientService *client.ServiceImpl
	ClientHandler *client.Handler

	RegistrationService *registration.ServiceImpl
	RegistrationHandler *registration.Handler

	NotificationService *notification.ServiceImpl
	NotificationHandler *notification.Handler

	unsubscribe []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	clock, err := utils.NewSystemClock(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.BudgetService = budget.NewService(budget.NewRepository(db), deps.EventBus, deps.Clock, cfg.Seed.Enabled)
	deps.BudgetRenderer = budget.NewCsvRenderer()
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService, deps.BudgetRenderer)

	deps.ClientService = client.NewService(client.NewRepository(db), deps.Clock)
	deps.ClientHandler = client.NewHandler(deps.ClientService)

	deps.RegistrationService = registration.NewService(registration.NewRepository(db), deps.ClientService, deps.EventBus, deps.Clock)
	deps.RegistrationHandler = registration.NewHandler(deps.RegistrationService)

	deps.NotificationService = notification.NewService(notification.NewRepository(db), deps.Clock)
	deps.NotificationHandler = notification.NewHandler(deps.NotificationService)
	deps.unsubscribe = append(deps.unsubscribe, notification.Subscribe(deps.EventBus, deps.NotificationService))

	return deps, nil
}

// Close removes the event subscriptions.
func (d *Dependencies) Close() {
	for _, u := range d.unsubscribe {
		u()
	}
}
