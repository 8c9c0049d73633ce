// Package main is the entry point for the per-diem planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // zone data for hosts without /usr/share/zoneinfo

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/perdiem-planner/backend/internal/config"
	"github.com/pkordes/perdiem-planner/backend/internal/currency"
	"github.com/pkordes/perdiem-planner/backend/internal/handler"
	"github.com/pkordes/perdiem-planner/backend/internal/middleware"
	"github.com/pkordes/perdiem-planner/backend/internal/perdiem"
	"github.com/pkordes/perdiem-planner/backend/internal/repo"
	"github.com/pkordes/perdiem-planner/backend/internal/service"
	"github.com/pkordes/perdiem-planner/backend/internal/timeline"
	"github.com/pkordes/perdiem-planner/backend/internal/tz"
	"github.com/pkordes/perdiem-planner/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file only fills in variables the environment leaves unset.
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open trip store", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Reference data ---------------------------------------------------
	var rates perdiem.RateLookup = perdiem.NoRates{}
	if cfg.RatesCSV != "" {
		table, err := perdiem.LoadCSV(cfg.RatesCSV)
		if err != nil {
			slog.Error("failed to load per-diem rates", "path", cfg.RatesCSV, "error", err)
			os.Exit(1)
		}
		slog.Info("per-diem rates loaded", "path", cfg.RatesCSV, "rows", table.Len())
		rates = table
	}

	fx := currency.Identity
	if cfg.FXRatesJSON != "" {
		fx, err = currency.Load(cfg.FXRatesJSON)
		if err != nil {
			slog.Error("failed to load currency rates", "path", cfg.FXRatesJSON, "error", err)
			os.Exit(1)
		}
		slog.Info("currency rates loaded", "path", cfg.FXRatesJSON, "base", fx.Base, "currencies", len(fx.Rates))
	}

	// --- Services ---------------------------------------------------------
	resolver := tz.NewResolver(nil)
	trips := service.NewTripService(store, rates, resolver)
	timelines := service.NewTimelineService(store, timeline.Options{Resolver: resolver, Logger: logger})
	export := service.NewExportService(store, fx)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → rate limit → body size.
	// RealIP must run before the rate limiter, which keys on RemoteAddr.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst).Handler)
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	handler.NewServer(trips, timelines, export).Routes(r)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore builds the configured TripStore. For Postgres it verifies the
// connection and applies pending migrations before returning.
func openStore(ctx context.Context, cfg config.Config) (repo.TripStore, func(), error) {
	if cfg.StorageBackend != config.StoragePostgres {
		slog.Warn("using in-memory trip store; trips are lost on restart")
		return repo.NewMemoryTripStore(nil), func() {}, nil
	}

	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("database connection established")

	// goose needs database/sql; borrow connections from the pool.
	sqlDB := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("migrations applied", "count", len(results))

	return repo.NewTripStore(pool), pool.Close, nil
}
