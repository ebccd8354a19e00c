// @title Event Registration API
// @version 1.0
// @description Registrants, yearly events, registrations and card payments. POST /registrations/new runs the full register-and-pay flow.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin token. Format: "Bearer {token}"
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"eventregistration/config"
	_ "eventregistration/docs"
	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/cache"
	"eventregistration/internal/adapters/email"
	"eventregistration/internal/adapters/square"
	deliveryhttp "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
	"eventregistration/internal/platform/otel"
	"eventregistration/internal/repository"
	"eventregistration/internal/repository/memory"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/repository/sqlite"
	"eventregistration/internal/services"
)

const serviceName = "eventregistration"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("tracing setup: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", "err", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	gateway, closeCache, err := newGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	notifier, err := email.NewNotifier(email.NotifierConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("notifier: %w", err)
	}

	events := repository.NewEventRepository(store)
	registrants := repository.NewRegistrantRepository(store)
	registrations := repository.NewRegistrationRepository(store, registrants, events)
	payments := repository.NewPaymentRepository(store, registrants, registrations)

	processor := services.NewPaymentProcessor(gateway, payments, registrations, services.ProcessorConfig{
		LocationID:      cfg.Square.LocationID,
		ChargeAttempts:  cfg.Saga.ChargeAttempts,
		ReceiptAttempts: cfg.Saga.ReceiptAttempts,
		RetryInterval:   cfg.Saga.RetryInterval,
	}, logger)
	saga := services.NewRegistrationSaga(services.SagaConfig{
		Registrants:              registrants,
		Customers:                services.NewCustomerResolver(gateway),
		Events:                   events,
		Registrations:            registrations,
		Payments:                 payments,
		Processor:                processor,
		Notifications:            services.NewNotificationService(notifier, cfg.Mailer.ReceiptTemplate, logger),
		Logger:                   logger,
		CleanupOnDuplicateCharge: cfg.Saga.CleanupOnDuplicateCharge,
	})

	var verifier domain.TokenVerifier
	if cfg.AdminJWTSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.AdminJWTSecret)
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set; listing endpoints are unauthenticated")
	}

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Events:        controllers.NewEventController(logger, events),
		Registrants:   controllers.NewRegistrantController(logger, registrants),
		Registrations: controllers.NewRegistrationController(logger, registrations, events, saga),
		Payments:      controllers.NewPaymentController(logger, payments),
	}, middleware.RequireAdmin(verifier, logger))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "store", cfg.Store.Driver, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (domain.DocumentStore, func(), error) {
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return postgres.NewDocumentStore(db), func() { _ = db.Close() }, nil
	case config.StoreDriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
}

// newGateway builds the Square client, wrapped in the Redis customer cache
// when REDIS_URL is set.
func newGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.PaymentGateway, func(), error) {
	gateway := square.NewClient(square.Config{
		Environment: cfg.Square.Environment,
		BaseURL:     cfg.Square.BaseURL,
		AccessToken: cfg.Square.AccessToken,
		Timeout:     cfg.Square.Timeout,
	}, nil)
	if cfg.Redis.URL == "" {
		return gateway, func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := cache.Ping(ctx, rdb); err != nil {
		// The cache falls through to Square on every Redis error.
		logger.Warn("redis unreachable at startup", "err", err)
	}
	return cache.NewCustomerCache(gateway, rdb, cfg.Redis.CustomerTTL, logger), func() { _ = rdb.Close() }, nil
}
