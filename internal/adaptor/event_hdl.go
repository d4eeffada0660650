package adaptor

import (
	"encoding/json"
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// Browse handles GET /api/v1/events (public)
func (h *EventHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BrowseEventsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Category: query.Get("category"),
	}

	events, err := h.service.Browse(r.Context(), req)
	if err != nil {
		writeServiceError(h.log, w, err, "browse events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetByID handles GET /api/v1/events/{id} (public)
func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.service.GetByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(h.log, w, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// ==================== ORGANIZER METHODS ====================

// Create handles POST /api/v1/events (organizer)
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.Create(r.Context(), userID.String(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// Update handles PUT /api/v1/events/{id} (organizer, own events)
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.Update(r.Context(), userID, role, eventID, &req)
	if err != nil {
		writeServiceError(h.log, w, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// Delete handles DELETE /api/v1/events/{id} (organizer, own events)
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), userID, role, eventID); err != nil {
		writeServiceError(h.log, w, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListMine handles GET /api/v1/events/mine (organizer)
func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	events, err := h.service.ListByOrganizer(r.Context(), userID.String(), req)
	if err != nil {
		writeServiceError(h.log, w, err, "list own events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// Analytics handles GET /api/v1/events/{id}/analytics (organizer, own events)
func (h *EventHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := callerFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	analytics, err := h.service.Analytics(r.Context(), userID, role, eventID)
	if err != nil {
		writeServiceError(h.log, w, err, "event analytics")
		return
	}

	utils.ResponseSuccess(w, "success", analytics)
}

// ==================== ADMIN METHODS ====================

// Approve handles PUT /api/v1/admin/events/{id}/approve (admin only)
func (h *EventHandler) Approve(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.Approve(r.Context(), eventID); err != nil {
		writeServiceError(h.log, w, err, "approve event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Reject handles PUT /api/v1/admin/events/{id}/reject (admin only)
func (h *EventHandler) Reject(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.Reject(r.Context(), eventID); err != nil {
		writeServiceError(h.log, w, err, "reject event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func callerFromContext(r *http.Request) (userID, role string, ok bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return "", "", false
	}
	role, _ = utils.GetRoleFromContext(r.Context())
	return id.String(), role, true
}
