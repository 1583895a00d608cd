package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// AvailabilityProvider computes open slots for a therapist and date. The
// bookings service satisfies this.
type AvailabilityProvider interface {
	Availability(ctx context.Context, therapistID, date string) ([]string, error)
}

// Handler serves the read-only data dispatch endpoint.
type Handler struct {
	repo         Repository
	availability AvailabilityProvider
	logger       *logging.Logger
}

// NewHandler creates a new catalog handler.
func NewHandler(repo Repository, availability AvailabilityProvider, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:         repo,
		availability: availability,
		logger:       logger,
	}
}

// GetData handles GET /get-data?type=services|therapists|products|availability.
// Every call recomputes from the live store; there is no caching.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	dataType := strings.TrimSpace(r.URL.Query().Get("type"))

	switch dataType {
	case "services":
		services, err := h.repo.ListServices(r.Context())
		if err != nil {
			h.serveFailure(w, "services", err)
			return
		}
		if services == nil {
			services = []Service{}
		}
		writeJSON(w, map[string]any{"services": services})
	case "therapists":
		therapists, err := h.repo.ListTherapists(r.Context())
		if err != nil {
			h.serveFailure(w, "therapists", err)
			return
		}
		if therapists == nil {
			therapists = []Therapist{}
		}
		writeJSON(w, map[string]any{"therapists": therapists})
	case "products":
		products, err := h.repo.ListProducts(r.Context())
		if err != nil {
			h.serveFailure(w, "products", err)
			return
		}
		if products == nil {
			products = []Product{}
		}
		writeJSON(w, map[string]any{"products": products})
	case "availability":
		therapistID := strings.TrimSpace(r.URL.Query().Get("therapist_id"))
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if therapistID == "" || date == "" {
			writeJSONError(w, "therapist_id and date are required", http.StatusBadRequest)
			return
		}
		slots, err := h.availability.Availability(r.Context(), therapistID, date)
		if err != nil {
			h.serveFailure(w, "availability", err)
			return
		}
		if slots == nil {
			slots = []string{}
		}
		writeJSON(w, map[string]any{"availableSlots": slots})
	default:
		writeJSONError(w, "unrecognized type parameter", http.StatusBadRequest)
	}
}

func (h *Handler) serveFailure(w http.ResponseWriter, dataType string, err error) {
	h.logger.Error("failed to serve data", "type", dataType, "error", err)
	writeJSONError(w, "failed to fetch "+dataType, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
