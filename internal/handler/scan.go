package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/punchdeck/punchdeck/internal/handler/dto"
	"github.com/punchdeck/punchdeck/internal/middleware"
	"github.com/punchdeck/punchdeck/internal/service"
)

// ScanHandler handles badge scan submissions from terminals.
type ScanHandler struct {
	svc    *service.AttendanceService
	logger *slog.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(svc *service.AttendanceService, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/scans.
// One tap toggles the user between clocked in and clocked out.
func (h *ScanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	receipt, err := h.svc.ProcessScan(r.Context(), req.CardUID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("scan_accepted",
		"request_id", middleware.GetRequestID(r.Context()),
		"receipt_id", receipt.ReceiptID,
		"user_id", receipt.User.ID,
		"event_type", receipt.Event.EventType,
	)

	writeJSON(w, http.StatusCreated, dto.ToScanResponse(receipt))
}
