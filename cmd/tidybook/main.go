package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/riandyrn/otelchi"

	"github.com/tidybook/tidybook/internal/adapter/fsm"
	handler "github.com/tidybook/tidybook/internal/adapter/http"
	"github.com/tidybook/tidybook/internal/adapter/otel"
	"github.com/tidybook/tidybook/internal/adapter/river"
	"github.com/tidybook/tidybook/internal/adapter/sqlite"
	"github.com/tidybook/tidybook/internal/app"
	"github.com/tidybook/tidybook/internal/promo"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("tidybook: %v", err)
	}
}

func run() error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// --- Telemetry ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	dbPath := envOrDefault("DATABASE_PATH", "tidybook.db")
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	riverClient, err := river.Setup(ctx, db)
	if err != nil {
		return fmt.Errorf("river setup: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			logger.Error("river stop", "error", err)
		}
	}()

	promos := sqlite.NewPromotionRepository(db)

	// --- Application ---
	svc := app.NewBookingService(
		otel.NewTracingLeadRepository(sqlite.NewLeadRepository(db)),
		promos,
		sqlite.NewConfigRepository(db),
		sqlite.NewAreaRepository(db),
		promo.NewResolver(promos),
		otel.NewTracingPublisher(river.NewPublisher(riverClient)),
		fsm.New(),
		logger,
	)

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware("tidybook", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("tidybook", "0.1.0"))
	handler.Register(api, svc)

	// --- Server ---
	port := envOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tidybook listening", "port", port, "docs", "http://localhost:"+port+"/docs")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
