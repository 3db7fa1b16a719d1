package registration

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/backoffice/internal/rest"
	"github.com/klokku/backoffice/pkg/client"
	log "github.com/sirupsen/logrus"
)

type TabStateDTO struct {
	Id      TabID `json:"id"`
	Step    int   `json:"step"`
	Enabled bool  `json:"enabled"`
	Active  bool  `json:"active"`
}

type StepsDTO struct {
	Tabs        []TabStateDTO `json:"tabs"`
	CurrentStep int           `json:"currentStep"`
	MaxStep     int           `json:"maxStep"`
	ActiveTab   TabID         `json:"activeTab"`
}

type DraftDTO struct {
	Uid       string    `json:"uid"`
	ClientId  int       `json:"clientId,omitempty"`
	Form      Form      `json:"form"`
	Steps     StepsDTO  `json:"steps"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FieldErrorDTO struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ValidationErrorDTO struct {
	Error  string          `json:"error"`
	Tab    TabID           `json:"tab"`
	Fields []FieldErrorDTO `json:"fields"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetSteps godoc
// @Summary Resolve the wizard tabs
// @Description Returns the tabs applicable to a person type and loan request, positioned on the first step.
// @Tags Registration
// @Produce json
// @Param personType query string false "individual (default) or organization"
// @Param wantsLoan query bool false "Loan requested"
// @Success 200 {object} StepsDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/registration/steps [get]
func (h *Handler) GetSteps(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	personType := PersonType(query.Get("personType"))
	if personType == "" {
		personType = Individual
	}
	if personType != Individual && personType != Organization {
		rest.WriteError(w, http.StatusBadRequest, "Invalid person type", string(personType))
		return
	}
	wantsLoan := false
	if raw := query.Get("wantsLoan"); raw != "" {
		var err error
		if wantsLoan, err = strconv.ParseBool(raw); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid wantsLoan", err.Error())
			return
		}
	}
	rest.WriteJSON(w, http.StatusOK, stepsToDTO(TabStates(ResolveSteps(personType, wantsLoan), 1)))
}

// StartDraft godoc
// @Summary Start a registration
// @Description Starts a wizard with the given form. With clientId the form is loaded from that client.
// @Tags Registration
// @Accept json
// @Produce json
// @Param clientId query int false "Client to edit"
// @Param form body Form false "Initial form"
// @Success 201 {object} DraftDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/registration [post]
// @Security XUserId
func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	log.Debug("Starting registration")
	var draft Draft
	var err error
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		clientId, convErr := strconv.Atoi(raw)
		if convErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid client id", convErr.Error())
			return
		}
		draft, err = h.service.StartFromClient(r.Context(), clientId)
	} else {
		var form Form
		if r.ContentLength != 0 {
			if decodeErr := json.NewDecoder(r.Body).Decode(&form); decodeErr != nil {
				rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", decodeErr.Error())
				return
			}
		}
		draft, err = h.service.Start(r.Context(), form)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, draftToDTO(draft))
}

// GetDraft godoc
// @Summary Get a registration draft
// @Tags Registration
// @Produce json
// @Param draftUid path string true "Draft UID"
// @Success 200 {object} DraftDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/registration/{draftUid} [get]
// @Security XUserId
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Get(r.Context(), mux.Vars(r)["draftUid"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// UpdateDraft godoc
// @Summary Save the wizard form
// @Description Changing personType or wantsLoan recomputes the tabs and keeps the wizard on an applicable tab.
// @Tags Registration
// @Accept json
// @Produce json
// @Param draftUid path string true "Draft UID"
// @Param form body Form true "Form"
// @Success 200 {object} DraftDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/registration/{draftUid} [put]
// @Security XUserId
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	draft, err := h.service.UpdateForm(r.Context(), mux.Vars(r)["draftUid"], form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// NextStep godoc
// @Summary Validate the active tab and go to the next one
// @Tags Registration
// @Produce json
// @Param draftUid path string true "Draft UID"
// @Success 200 {object} DraftDTO
// @Failure 404 {object} rest.ErrorResponse
// @Failure 422 {object} ValidationErrorDTO
// @Router /api/registration/{draftUid}/next [post]
// @Security XUserId
func (h *Handler) NextStep(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Next(r.Context(), mux.Vars(r)["draftUid"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// PreviousStep godoc
// @Summary Go back one tab
// @Tags Registration
// @Produce json
// @Param draftUid path string true "Draft UID"
// @Success 200 {object} DraftDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/registration/{draftUid}/previous [post]
// @Security XUserId
func (h *Handler) PreviousStep(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Previous(r.Context(), mux.Vars(r)["draftUid"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, draftToDTO(draft))
}

// SubmitDraft godoc
// @Summary Submit the registration
// @Description Validates every tab and creates the client, or updates it when the draft edits one.
// @Tags Registration
// @Produce json
// @Param draftUid path string true "Draft UID"
// @Success 200 {object} client.ClientDTO
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Failure 422 {object} ValidationErrorDTO
// @Router /api/registration/{draftUid}/submit [post]
// @Security XUserId
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Submit(r.Context(), mux.Vars(r)["draftUid"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, client.ClientToDTO(c))
}

// DiscardDraft godoc
// @Summary Discard a registration draft
// @Tags Registration
// @Param draftUid path string true "Draft UID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Draft Not Found"
// @Router /api/registration/{draftUid} [delete]
// @Security XUserId
func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Discard(r.Context(), mux.Vars(r)["draftUid"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		fields := make([]FieldErrorDTO, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, FieldErrorDTO{Field: f.Field, Rule: f.Rule, Message: f.Message})
		}
		rest.WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorDTO{
			Error:  "Validation failed",
			Tab:    validationErr.Tab,
			Fields: fields,
		})
	case errors.Is(err, ErrDraftNotFound):
		rest.WriteError(w, http.StatusNotFound, "Registration draft not found", "")
	case errors.Is(err, client.ErrClientNotFound):
		rest.WriteError(w, http.StatusNotFound, "Client not found", "")
	case errors.Is(err, client.ErrClientExists):
		rest.WriteError(w, http.StatusConflict, "Client already registered", err.Error())
	case errors.Is(err, ErrInvalidPersonType):
		rest.WriteError(w, http.StatusBadRequest, "Invalid person type", err.Error())
	case errors.Is(err, ErrNotOnLastStep):
		rest.WriteError(w, http.StatusConflict, "Registration is not on the last step", err.Error())
	case errors.Is(err, client.ErrInvalidClient):
		rest.WriteError(w, http.StatusBadRequest, "Invalid client", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func stepsToDTO(steps Steps) StepsDTO {
	tabs := make([]TabStateDTO, 0, len(steps.Tabs))
	for _, t := range steps.Tabs {
		tabs = append(tabs, TabStateDTO{Id: t.Id, Step: t.Step, Enabled: t.Enabled, Active: t.Active})
	}
	return StepsDTO{
		Tabs:        tabs,
		CurrentStep: steps.CurrentStep,
		MaxStep:     steps.MaxStep,
		ActiveTab:   steps.ActiveTab,
	}
}

func draftToDTO(d Draft) DraftDTO {
	return DraftDTO{
		Uid:       d.Uid,
		ClientId:  d.ClientId,
		Form:      d.Form,
		Steps:     stepsToDTO(TabStates(d.Tabs(), d.CurrentStep)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
