package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/punchdeck/punchdeck/internal/handler/dto"
	"github.com/punchdeck/punchdeck/internal/service"
)

// UserHandler handles HTTP requests for the user registry.
type UserHandler struct {
	svc    *service.AttendanceService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AttendanceService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		CardUID: req.CardUID,
		Name:    req.Name,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ID,
		"name", user.Name,
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// GetByCard handles GET /api/v1/users/card/{cardUID}.
func (h *UserHandler) GetByCard(w http.ResponseWriter, r *http.Request) {
	cardUID := chi.URLParam(r, "cardUID")
	if cardUID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CARD_UID", "Card UID is required")
		return
	}

	user, err := h.svc.GetUserByCard(r.Context(), cardUID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}
