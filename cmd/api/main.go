package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/serenity-spa/booking-platform/internal/accounts"
	"github.com/serenity-spa/booking-platform/internal/api/router"
	"github.com/serenity-spa/booking-platform/internal/auth"
	"github.com/serenity-spa/booking-platform/internal/bookings"
	"github.com/serenity-spa/booking-platform/internal/catalog"
	appconfig "github.com/serenity-spa/booking-platform/internal/config"
	httpmiddleware "github.com/serenity-spa/booking-platform/internal/http/middleware"
	"github.com/serenity-spa/booking-platform/internal/notify"
	"github.com/serenity-spa/booking-platform/internal/observability/metrics"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

func main() {
	// Load .env if present; real deployments rely on the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// accounts uses database/sql over the same database.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	var redisLimiter *httpmiddleware.RedisRateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, falling back to in-memory rate limiting", "error", err)
		} else {
			redisLimiter = httpmiddleware.NewRedisRateLimiter(rdb, cfg.RateLimitBurst, time.Second, "spa:rl")
		}
	}

	sender := buildEmailSender(ctx, cfg, logger)

	bookingsRepo := bookings.NewPostgresRepository(pool)
	bookingsService := bookings.NewService(bookingsRepo, bookingMetrics, logger)
	bookingsHandler := bookings.NewHandler(bookingsService, logger)

	catalogRepo := catalog.NewPostgresRepository(pool)
	catalogHandler := catalog.NewHandler(catalogRepo, bookingsService, logger)

	accountsStore := accounts.NewStore(db)
	accountsHandler := accounts.NewHandler(accountsStore, logger)

	notifyHandler := notify.NewHandler(sender, bookingMetrics, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		Verifier:           auth.NewVerifier(cfg.AuthJWTSecret),
		BookingsHandler:    bookingsHandler,
		CatalogHandler:     catalogHandler,
		AccountsHandler:    accountsHandler,
		NotifyHandler:      notifyHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		RedisRateLimiter:   redisLimiter,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildEmailSender wires the provider named by EMAIL_PROVIDER. A provider
// whose configuration is incomplete degrades to the stub so the API still
// serves bookings.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "smtp":
		if s := notify.NewSMTPSender(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s
		}
		logger.Warn("smtp host not configured, email disabled")
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s
		}
		logger.Warn("sendgrid api key not configured, email disabled")
	case "ses":
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.AWSRegion),
		}
		if cfg.AWSAccessKeyID != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			logger.Warn("failed to load AWS config, email disabled", "error", err)
			break
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, logger); s != nil {
			return s
		}
	case "stub":
	default:
		logger.Warn("unknown email provider, email disabled", "provider", cfg.EmailProvider)
	}
	return notify.NewStubEmailSender(logger)
}
