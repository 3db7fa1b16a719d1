package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.ListBudgets).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.CreateBudget).Methods("POST")
	r.HandleFunc("/api/budget/summary", deps.BudgetHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/budget/seed", deps.BudgetHandler.SeedBudgets).Methods("POST")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.GetBudget).Methods("GET")
	r.HandleFunc("/api/budget/{budgetId}", deps.BudgetHandler.DeleteBudget).Methods("DELETE")
	r.HandleFunc("/api/budget/{budgetId}/approve", deps.BudgetHandler.ApproveBudget).Methods("PATCH")
	r.HandleFunc("/api/budget/{budgetId}/reject", deps.BudgetHandler.RejectBudget).Methods("PATCH")

	// Clients
	r.HandleFunc("/api/client", deps.ClientHandler.ListClients).Methods("GET")
	r.HandleFunc("/api/client/{clientId}", deps.ClientHandler.GetClient).Methods("GET")
	r.HandleFunc("/api/client/{clientId}", deps.ClientHandler.DeleteClient).Methods("DELETE")

	// Registration wizard
	r.HandleFunc("/api/registration/steps", deps.RegistrationHandler.GetSteps).Methods("GET")
	r.HandleFunc("/api/registration", deps.RegistrationHandler.StartDraft).Methods("POST")
	r.HandleFunc("/api/registration/{draftUid}", deps.RegistrationHandler.GetDraft).Methods("GET")
	r.HandleFunc("/api/registration/{draftUid}", deps.RegistrationHandler.UpdateDraft).Methods("PUT")
	r.HandleFunc("/api/registration/{draftUid}", deps.RegistrationHandler.DiscardDraft).Methods("DELETE")
	r.HandleFunc("/api/registration/{draftUid}/next", deps.RegistrationHandler.NextStep).Methods("POST")
	r.HandleFunc("/api/registration/{draftUid}/previous", deps.RegistrationHandler.PreviousStep).Methods("POST")
	r.HandleFunc("/api/registration/{draftUid}/submit", deps.RegistrationHandler.SubmitDraft).Methods("POST")

	// Notifications
	r.HandleFunc("/api/notification", deps.NotificationHandler.ListNotifications).Methods("GET")
	r.HandleFunc("/api/notification", deps.NotificationHandler.ClearNotifications).Methods("DELETE")
	r.HandleFunc("/api/notification/{uid}/read", deps.NotificationHandler.MarkRead).Methods("PUT")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.ListUsers).Methods("GET")
}
