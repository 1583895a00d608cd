package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/serenity-spa/booking-platform/internal/accounts"
	"github.com/serenity-spa/booking-platform/internal/auth"
	"github.com/serenity-spa/booking-platform/internal/bookings"
	"github.com/serenity-spa/booking-platform/internal/catalog"
	httpmiddleware "github.com/serenity-spa/booking-platform/internal/http/middleware"
	"github.com/serenity-spa/booking-platform/internal/notify"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	Verifier        *auth.Verifier
	BookingsHandler *bookings.Handler
	CatalogHandler  *catalog.Handler
	AccountsHandler *accounts.Handler
	NotifyHandler   *notify.Handler
	MetricsHandler  http.Handler

	CORSAllowedOrigins []string

	// In-memory token bucket, used when no Redis limiter is configured.
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Shared fixed-window limiter backed by Redis. When set it takes
	// precedence over the in-memory bucket.
	RedisRateLimiter *httpmiddleware.RedisRateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	rateLimit := rateLimitMiddleware(cfg)

	// Public endpoints (catalog reads, health checks)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.CatalogHandler != nil {
			public.Get("/get-data", cfg.CatalogHandler.GetData)
		}
	})

	// Token-scoped endpoints
	r.Group(func(private chi.Router) {
		if cfg.Verifier != nil {
			private.Use(auth.RequireIdentity(cfg.Verifier))
		}
		if rateLimit != nil {
			private.Use(rateLimit)
		}
		if cfg.BookingsHandler != nil {
			private.Post("/create-booking", cfg.BookingsHandler.CreateBooking)
		}
		if cfg.AccountsHandler != nil {
			private.Get("/get-user-data", cfg.AccountsHandler.GetUserData)
		}
		if cfg.NotifyHandler != nil {
			private.Post("/send-email", cfg.NotifyHandler.SendEmail)
		}
	})

	return r
}

func rateLimitMiddleware(cfg *Config) func(http.Handler) http.Handler {
	if cfg.RedisRateLimiter != nil {
		return cfg.RedisRateLimiter.Middleware(cfg.Logger)
	}
	if cfg.RateLimitPerSecond > 0 {
		return httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}
	return nil
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
