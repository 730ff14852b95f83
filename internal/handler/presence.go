package handler

import (
	"log/slog"
	"net/http"

	"github.com/punchdeck/punchdeck/internal/handler/dto"
	"github.com/punchdeck/punchdeck/internal/service"
)

// PresenceHandler serves the presence view, aggregate stats, and the
// dashboard. Every response is computed from the live event log; nothing
// here is cached.
type PresenceHandler struct {
	svc    *service.AttendanceService
	logger *slog.Logger
}

// NewPresenceHandler creates a new PresenceHandler.
func NewPresenceHandler(svc *service.AttendanceService, logger *slog.Logger) *PresenceHandler {
	return &PresenceHandler{
		svc:    svc,
		logger: logger,
	}
}

// CurrentlyIn handles GET /api/v1/presence.
func (h *PresenceHandler) CurrentlyIn(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.CurrentlyIn(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	resp := dto.PresenceResponse{
		Count: len(users),
	}
	resp.Data = make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp.Data[i] = dto.ToUserResponse(user)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/v1/stats.
func (h *PresenceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}

// Dashboard handles GET /api/v1/dashboard.
func (h *PresenceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	resp := dto.DashboardResponse{
		Stats:       dto.ToStatsResponse(dashboard.Stats),
		EventsToday: dashboard.EventsToday,
	}
	resp.RecentEvents = make([]dto.EventResponse, len(dashboard.RecentEvents))
	for i, event := range dashboard.RecentEvents {
		resp.RecentEvents[i] = dto.ToEventWithUserResponse(event)
	}

	writeJSON(w, http.StatusOK, resp)
}
