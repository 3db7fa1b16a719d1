package event_bus

import "time"

const (
	BudgetCreatedType       EventType = "budget.created"
	BudgetStatusChangedType EventType = "budget.status.changed"
	ClientRegisteredType    EventType = "client.registered"
)

type BudgetCreated struct {
	BudgetId   string
	ClientName string
	Value      string
}

type BudgetStatusChanged struct {
	BudgetId   string
	ClientName string
	From       string
	To         string
	ChangedAt  time.Time
	ChangedBy  string
}

type ClientRegistered struct {
	ClientId int
	Name     string
	// Updated is true when the registration edited an existing client.
	Updated bool
}
