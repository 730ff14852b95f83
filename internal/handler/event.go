package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/punchdeck/punchdeck/internal/handler/dto"
	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/service"
)

// EventHandler handles HTTP requests for the clock event log.
type EventHandler struct {
	svc    *service.AttendanceService
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.AttendanceService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "A positive user_id is required")
		return
	}

	event, err := h.svc.RecordEvent(r.Context(), req.UserID, model.EventType(req.EventType))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("event_recorded",
		"event_id", event.ID,
		"user_id", event.UserID,
		"event_type", event.EventType,
	)

	writeJSON(w, http.StatusCreated, dto.ToEventResponse(event))
}

// List handles GET /api/v1/events.
// Supported query parameters: user_id, from, to (RFC3339), limit.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter service.EventFilter

	if raw := query.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_USER_ID", "user_id must be a positive integer")
			return
		}
		filter.UserID = &id
	}

	if raw := query.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FROM", "from must be an RFC3339 timestamp")
			return
		}
		filter.From = &t
	}

	if raw := query.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TO", "to must be an RFC3339 timestamp")
			return
		}
		filter.To = &t
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	events, err := h.svc.ListEvents(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventListResponse(events))
}
