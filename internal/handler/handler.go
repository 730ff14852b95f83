// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/punchdeck/punchdeck/internal/handler/dto"
	"github.com/punchdeck/punchdeck/internal/service"
)

// Handler serves the root and fallback endpoints.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is a simple service info endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Punchdeck!",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
		Error: "resource not found",
		Code:  "NOT_FOUND",
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{
		Error: "method not allowed",
		Code:  "METHOD_NOT_ALLOWED",
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeServiceError maps service errors shared across handlers to HTTP
// responses. Validation failures carry the full list of field violations.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if verrs, ok := service.AsValidationErrors(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:  "validation failed",
			Code:   "VALIDATION_FAILED",
			Fields: dto.ToValidationFields(verrs),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrCardUIDExists):
		writeError(w, http.StatusConflict, "CARD_UID_TAKEN", "A user with this card UID already exists")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrUnknownCard):
		writeError(w, http.StatusNotFound, "UNKNOWN_CARD", "No user registered for this card")
	case errors.Is(err, service.ErrInvalidEventType):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_EVENT_TYPE", "Event type must be 'in' or 'out'")
	case errors.Is(err, service.ErrScanDebounced):
		writeError(w, http.StatusConflict, "SCAN_DEBOUNCED", "Duplicate scan ignored, try again shortly")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
