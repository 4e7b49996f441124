// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/ntandostore/internal/admin"
	"github.com/carterperez-dev/ntandostore/internal/asset"
	"github.com/carterperez-dev/ntandostore/internal/catalog"
	"github.com/carterperez-dev/ntandostore/internal/config"
	"github.com/carterperez-dev/ntandostore/internal/contact"
	"github.com/carterperez-dev/ntandostore/internal/core"
	"github.com/carterperez-dev/ntandostore/internal/health"
	"github.com/carterperez-dev/ntandostore/internal/middleware"
	"github.com/carterperez-dev/ntandostore/internal/notify"
	"github.com/carterperez-dev/ntandostore/internal/order"
	"github.com/carterperez-dev/ntandostore/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	cat, err := catalog.New(cfg.Catalog.Services)
	if err != nil {
		return err
	}
	logger.Info("service catalog loaded", "services", len(cat.List()))

	sessionStore := admin.NewSessionStore(redis.Client, cfg.Auth.SessionTTL)

	adminRepo := admin.NewRepository(db.DB)
	adminSvc := admin.NewService(
		adminRepo,
		sessionStore,
		cfg.Auth.MaxAttempts,
		cfg.Auth.LockoutWindow,
	)
	if err := adminSvc.Seed(
		ctx,
		cfg.Auth.SeedUsername,
		cfg.Auth.SeedPassword,
		cfg.Auth.SeedEmail,
	); err != nil {
		return err
	}
	adminHandler := admin.NewHandler(adminSvc, cfg.Auth)

	dispatcher := notify.NewDispatcher(logger)

	orderRepo := order.NewRepository(db.DB)
	orderSvc := order.NewService(orderRepo, cat, dispatcher)
	orderHandler := order.NewHandler(orderSvc, cat)

	fileStore, err := asset.NewFileStore(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	assetRepo := asset.NewRepository(db.DB)
	assetSvc := asset.NewService(assetRepo, fileStore, cfg.Upload)
	assetHandler := asset.NewHandler(assetSvc, cfg.Upload)

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(contactRepo, dispatcher)
	contactHandler := contact.NewHandler(contactSvc)

	dashboardHandler := admin.NewDashboardHandler(orderSvc, assetSvc)

	healthHandler := health.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders)

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.SessionAuthenticator(
		sessionStore,
		cfg.Auth.SessionCookie,
	)
	csrf := middleware.CSRFVerifier(sessionStore, cfg.Auth.SessionCookie)
	loginLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.LoginRequests,
				cfg.RateLimit.LoginBurst,
			),
			KeyFunc: middleware.KeyByIPAndPath,
		},
	).Handler

	adminHandler.RegisterRoutes(router, authenticator, loginLimiter)
	orderHandler.RegisterRoutes(router, csrf)
	orderHandler.RegisterAdminRoutes(router, authenticator, csrf)
	contactHandler.RegisterRoutes(router, csrf)
	assetHandler.RegisterRoutes(router)
	assetHandler.RegisterAdminRoutes(router, authenticator, csrf)
	dashboardHandler.RegisterRoutes(router, authenticator)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
