package bookings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/serenity-spa/booking-platform/internal/auth"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for bookings
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new bookings handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateBookingResponse is the success envelope for POST /create-booking.
type CreateBookingResponse struct {
	Success     bool         `json:"success"`
	Appointment *Appointment `json:"appointment"`
	Message     string       `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CreateBooking handles POST /create-booking requests. Guest bookings still
// require a resolvable caller token; the row itself records no user.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.IsGuest {
		req.UserID = identity.UserID
	}

	appt, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			writeError(w, ErrSlotTaken.Error(), http.StatusConflict)
		case isValidationError(err):
			writeError(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create booking", "error", err)
			writeError(w, "Failed to create booking", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(CreateBookingResponse{
		Success:     true,
		Appointment: appt,
		Message:     "Booking confirmed",
	})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingService,
		ErrMissingTherapist,
		ErrMissingDate,
		ErrMissingTime,
		ErrGuestDetailsRequired,
		ErrMissingUser,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Success: false, Error: msg})
}
