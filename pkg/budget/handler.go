package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/klokku/backoffice/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ClientDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type BudgetDTO struct {
	Id           string         `json:"id"`
	Client       ClientDTO      `json:"client"`
	Value        string         `json:"value"`
	IssueDate    string         `json:"issueDate"`
	ExpiryDate   string         `json:"expiryDate"`
	Status       Status         `json:"status"`
	PaymentTerms string         `json:"paymentTerms"`
	Items        []Item         `json:"items"`
	History      []HistoryEvent `json:"history"`
	Attachments  []Attachment   `json:"attachments"`
}

type StatusSummaryDTO struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

type SummaryDTO struct {
	Count    int                         `json:"count"`
	Total    string                      `json:"total"`
	ByStatus map[Status]StatusSummaryDTO `json:"byStatus"`
	Unparsed int                         `json:"unparsed,omitempty"`
}

type Handler struct {
	service  Service
	renderer Renderer
}

func NewHandler(service Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// ParseCriteria reads filter criteria from query parameters. Unlike Filter, it rejects malformed
// values and dates so the caller can report them.
func ParseCriteria(query url.Values) (Criteria, error) {
	criteria := Criteria{
		SearchTerm:    query.Get("search"),
		Client:        query.Get("client"),
		MinValue:      query.Get("minValue"),
		MaxValue:      query.Get("maxValue"),
		PaymentMethod: query.Get("paymentMethod"),
	}

	switch status := Status(query.Get("status")); {
	case status == "" || status == StatusAll || status == "all":
		criteria.Status = ""
	case status.Valid():
		criteria.Status = status
	default:
		return Criteria{}, fmt.Errorf("unknown status %q", status)
	}

	for _, bound := range []string{criteria.MinValue, criteria.MaxValue} {
		if bound == "" {
			continue
		}
		if _, err := ParseCurrency(bound); err != nil {
			return Criteria{}, err
		}
	}

	var err error
	if from := query.Get("dateFrom"); from != "" {
		if criteria.DateFrom, err = ParseDateParam(from); err != nil {
			return Criteria{}, err
		}
	}
	if to := query.Get("dateTo"); to != "" {
		if criteria.DateTo, err = ParseDateParam(to); err != nil {
			return Criteria{}, err
		}
	}
	return criteria, nil
}

// ListBudgets godoc
// @Summary List budgets
// @Description List the budgets of the current user matching the given filters. Sends CSV when Accept is text/csv.
// @Tags Budget
// @Produce json,text/csv
// @Param search query string false "Client name, id or value"
// @Param status query string false "pendente, aprovado, rejeitado, expirado or todos"
// @Param client query string false "Client name"
// @Param minValue query string false "Minimum value (R$)"
// @Param maxValue query string false "Maximum value (R$)"
// @Param paymentMethod query string false "Payment terms"
// @Param dateFrom query string false "Issued on or after (dd/mm/yyyy)"
// @Param dateTo query string false "Issued on or before (dd/mm/yyyy)"
// @Success 200 {array} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget [get]
// @Security XUserId
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing budgets")
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	budgets, err := h.service.List(r.Context(), criteria)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if acceptsCSV(r) {
		csv, err := h.renderer.Render(budgets)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="orcamentos.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, BudgetToDTO(b))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetSummary godoc
// @Summary Budget totals by status
// @Tags Budget
// @Produce json
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget/summary [get]
// @Security XUserId
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	summary, err := h.service.Summary(r.Context(), criteria)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SummaryToDTO(summary))
}

// GetBudget godoc
// @Summary Get a budget
// @Tags Budget
// @Produce json
// @Param budgetId path string true "Budget ID (ORC001)"
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/budget/{budgetId} [get]
// @Security XUserId
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["budgetId"]
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(b))
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Creates a pending budget. Value is computed from items when items are given.
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget [post]
// @Security XUserId
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating budget")
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), DTOToBudget(dto))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, BudgetToDTO(created))
}

// ApproveBudget godoc
// @Summary Approve a pending budget
// @Tags Budget
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "Budget is not pending"
// @Router /api/budget/{budgetId}/approve [patch]
// @Security XUserId
func (h *Handler) ApproveBudget(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Approve(r.Context(), mux.Vars(r)["budgetId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(b))
}

// RejectBudget godoc
// @Summary Reject a pending budget
// @Tags Budget
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Success 200 {object} BudgetDTO
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "Budget is not pending"
// @Router /api/budget/{budgetId}/reject [patch]
// @Security XUserId
func (h *Handler) RejectBudget(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Reject(r.Context(), mux.Vars(r)["budgetId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(b))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags Budget
// @Param budgetId path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId} [delete]
// @Security XUserId
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["budgetId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SeedBudgets godoc
// @Summary Load the demo budgets
// @Description Inserts the demo dataset once per user.
// @Tags Budget
// @Produce json
// @Success 200 {object} object{inserted=int}
// @Router /api/budget/seed [post]
// @Security XUserId
func (h *Handler) SeedBudgets(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.service.Seed(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int{"inserted": inserted})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBudgetNotFound):
		rest.WriteError(w, http.StatusNotFound, "Budget not found", "")
	case errors.Is(err, ErrInvalidStatusTransition):
		rest.WriteError(w, http.StatusConflict, "Invalid status transition", err.Error())
	case errors.Is(err, ErrInvalidBudget):
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func BudgetToDTO(b Budget) BudgetDTO {
	b = withNonNilCollections(b)
	return BudgetDTO{
		Id: b.Id,
		Client: ClientDTO{
			Name:    b.Client.Name,
			Email:   b.Client.Email,
			Phone:   b.Client.Phone,
			Address: b.Client.Address,
		},
		Value:        b.Value,
		IssueDate:    b.IssueDate,
		ExpiryDate:   b.ExpiryDate,
		Status:       b.Status,
		PaymentTerms: b.PaymentTerms,
		Items:        b.Items,
		History:      b.History,
		Attachments:  b.Attachments,
	}
}

func DTOToBudget(dto BudgetDTO) Budget {
	return Budget{
		Id: dto.Id,
		Client: Client{
			Name:    dto.Client.Name,
			Email:   dto.Client.Email,
			Phone:   dto.Client.Phone,
			Address: dto.Client.Address,
		},
		Value:        dto.Value,
		IssueDate:    dto.IssueDate,
		ExpiryDate:   dto.ExpiryDate,
		Status:       dto.Status,
		PaymentTerms: dto.PaymentTerms,
		Items:        dto.Items,
		History:      dto.History,
		Attachments:  dto.Attachments,
	}
}

func SummaryToDTO(summary Summary) SummaryDTO {
	byStatus := make(map[Status]StatusSummaryDTO, len(summary.ByStatus))
	for status, s := range summary.ByStatus {
		byStatus[status] = StatusSummaryDTO{Count: s.Count, Total: FormatCurrency(s.Total)}
	}
	return SummaryDTO{
		Count:    summary.Count,
		Total:    FormatCurrency(summary.Total),
		ByStatus: byStatus,
		Unparsed: summary.Unparsed,
	}
}

// acceptsCSV reports whether any Accept entry names text/csv with a non-zero quality.
func acceptsCSV(r *http.Request) bool {
	for _, header := range r.Header.Values("Accept") {
		for _, entry := range strings.Split(header, ",") {
			mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(entry))
			if err != nil || mediaType != "text/csv" {
				continue
			}
			if q, ok := params["q"]; ok {
				if weight, err := strconv.ParseFloat(q, 64); err != nil || weight == 0 {
					continue
				}
			}
			return true
		}
	}
	return false
}
