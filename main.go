package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/arrivederci/menu-api/app/db"
	appLogger "github.com/arrivederci/menu-api/app/logger"
	appMiddleware "github.com/arrivederci/menu-api/app/middleware"
	"github.com/arrivederci/menu-api/app/observability"
	"github.com/arrivederci/menu-api/config"
	"github.com/arrivederci/menu-api/internal/container"
	api "github.com/arrivederci/menu-api/internal/router"
	"github.com/arrivederci/menu-api/internal/seed"
)

func main() {
	// Standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(&cfg)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsHandler, err := observability.Init()
	if err != nil {
		logger.Error("Failed to initialize observability", slog.Any("error", err))
		os.Exit(1)
	}

	// Migrations run before the main pool opens. Startup fails fast when the
	// database is unreachable.
	if err := database.RunMigrations(cfg.Database.URL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// Bootstrap seeding: default admin, and demo menu data when the catalog
	// is empty.
	if err := seed.EnsureAdmin(ctx, pool, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, logger); err != nil {
		logger.Error("Failed to ensure admin user", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Seed.DemoData {
		if err := seed.SeedDemoData(ctx, pool, logger); err != nil {
			logger.Error("Failed to seed demo data", slog.Any("error", err))
			os.Exit(1)
		}
	}

	c := container.NewContainer(&cfg, pool, logger)

	apiRouter := api.SetupRouter(&api.Config{
		SessionHandler:  c.SessionHandler,
		CategoryHandler: c.CategoryHandler,
		ProductHandler:  c.ProductHandler,
		RequireAuth:     c.RequireAuth,
		AllowedOrigins:  cfg.CORS.Origins,
		MetricsHandler:  metricsHandler,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(appMiddleware.SecurityHeaders)
	router.Mount("/", apiRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures the application logger: colored output in
// development, JSON in production.
func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}
