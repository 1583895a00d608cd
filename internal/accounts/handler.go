package accounts

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/serenity-spa/booking-platform/internal/auth"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// Handler serves caller-scoped data behind the identity middleware.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new accounts handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// GetUserData handles GET /get-user-data?type=appointments|orders|profile.
// Every branch is scoped to the identity resolved from the bearer token.
func (h *Handler) GetUserData(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSONError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	dataType := strings.TrimSpace(r.URL.Query().Get("type"))
	switch dataType {
	case "appointments":
		appointments, err := h.store.ListAppointments(r.Context(), identity.UserID)
		if err != nil {
			h.serveFailure(w, identity.UserID, "appointments", err)
			return
		}
		if appointments == nil {
			appointments = []UserAppointment{}
		}
		writeJSON(w, map[string]any{"appointments": appointments})
	case "orders":
		orders, err := h.store.ListOrders(r.Context(), identity.UserID)
		if err != nil {
			h.serveFailure(w, identity.UserID, "orders", err)
			return
		}
		if orders == nil {
			orders = []Order{}
		}
		writeJSON(w, map[string]any{"orders": orders})
	case "profile":
		profile, err := h.store.GetProfile(r.Context(), identity.UserID)
		if err != nil {
			h.serveFailure(w, identity.UserID, "profile", err)
			return
		}
		roles, err := h.store.ListRoles(r.Context(), identity.UserID)
		if err != nil {
			h.serveFailure(w, identity.UserID, "roles", err)
			return
		}
		// A user with no profile row gets profile:null, not an error.
		writeJSON(w, map[string]any{
			"profile": profile,
			"user": User{
				ID:    identity.UserID,
				Email: identity.Email,
				Roles: roles,
			},
		})
	default:
		writeJSONError(w, "unrecognized type parameter", http.StatusBadRequest)
	}
}

func (h *Handler) serveFailure(w http.ResponseWriter, userID, dataType string, err error) {
	h.logger.Error("failed to serve user data", "user_id", userID, "type", dataType, "error", err)
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
