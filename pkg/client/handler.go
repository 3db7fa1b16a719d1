package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/backoffice/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ClientDTO struct {
	Id          int             `json:"id"`
	Uid         string          `json:"uid"`
	PersonType  PersonType      `json:"personType"`
	Name        string          `json:"name"`
	Document    string          `json:"document"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	CompanyName string          `json:"companyName,omitempty"`
	TradeName   string          `json:"tradeName,omitempty"`
	WantsLoan   bool            `json:"wantsLoan"`
	LoanAmount  string          `json:"loanAmount,omitempty"`
	Form        json.RawMessage `json:"form,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListClients godoc
// @Summary List clients
// @Tags Client
// @Produce json
// @Param search query string false "Name, company, document or email"
// @Success 200 {array} ClientDTO
// @Router /api/client [get]
// @Security XUserId
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing clients")
	clients, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ClientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, ClientToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetClient godoc
// @Summary Get a client
// @Tags Client
// @Produce json
// @Param clientId path int true "Client ID"
// @Success 200 {object} ClientDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/client/{clientId} [get]
// @Security XUserId
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["clientId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid client id", err.Error())
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Client not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ClientToDTO(c))
}

// DeleteClient godoc
// @Summary Delete a client
// @Tags Client
// @Param clientId path int true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Client Not Found"
// @Router /api/client/{clientId} [delete]
// @Security XUserId
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["clientId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid client id", err.Error())
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ClientToDTO(c Client) ClientDTO {
	return ClientDTO{
		Id:          c.Id,
		Uid:         c.Uid,
		PersonType:  c.PersonType,
		Name:        c.Name,
		Document:    c.Document,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CompanyName: c.CompanyName,
		TradeName:   c.TradeName,
		WantsLoan:   c.WantsLoan,
		LoanAmount:  c.LoanAmount,
		Form:        c.Form,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
