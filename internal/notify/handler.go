package notify

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serenity-spa/booking-platform/internal/observability/metrics"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// Handler serves the transactional email dispatch endpoint.
type Handler struct {
	sender  EmailSender
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

// NewHandler creates a new email dispatch handler.
func NewHandler(sender EmailSender, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sender:  sender,
		metrics: m,
		logger:  logger,
	}
}

// SendEmailRequest is the request body for POST /send-email.
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Type    string `json:"type"`
}

// SendEmail handles POST /send-email. A relay failure is terminal for the
// request; nothing is retried.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTML) == "" {
		writeEnvelope(w, http.StatusBadRequest, false, "to, subject and html are required")
		return
	}

	err := h.sender.Send(r.Context(), EmailMessage{
		To:       req.To,
		Subject:  req.Subject,
		HTML:     req.HTML,
		Category: req.Type,
	})
	if err != nil {
		h.metrics.ObserveEmail("failed")
		h.logger.Error("email dispatch failed", "to", req.To, "error", err)
		writeEnvelope(w, http.StatusInternalServerError, false, err.Error())
		return
	}

	h.metrics.ObserveEmail("sent")
	writeEnvelope(w, http.StatusOK, true, "Email sent")
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]any{"success": success}
	if success {
		payload["message"] = msg
	} else {
		payload["error"] = msg
	}
	json.NewEncoder(w).Encode(payload)
}
