package notification

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/backoffice/internal/rest"
)

type NotificationDTO struct {
	Uid       string    `json:"uid"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListNotifications godoc
// @Summary List notifications of the current user
// @Tags Notification
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Success 200 {array} NotificationDTO
// @Router /api/notification [get]
// @Security XUserId
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		var err error
		if unreadOnly, err = strconv.ParseBool(raw); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid unread parameter", err.Error())
			return
		}
	}
	notifications, err := h.service.List(r.Context(), unreadOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, NotificationDTO(n))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notification
// @Param uid path string true "Notification UID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/notification/{uid}/read [put]
// @Security XUserId
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.service.MarkRead(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Notification not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearNotifications godoc
// @Summary Delete every notification of the current user
// @Tags Notification
// @Produce json
// @Success 200 {object} object{deleted=int}
// @Router /api/notification [delete]
// @Security XUserId
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Clear(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
