// Package main is the entry point for the dashboard API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/jimmeey/expiry-dashboard/internal/config"
	"github.com/jimmeey/expiry-dashboard/internal/handler"
	"github.com/jimmeey/expiry-dashboard/internal/merge"
	"github.com/jimmeey/expiry-dashboard/internal/middleware"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed/pg"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed/sheets"
	"github.com/jimmeey/expiry-dashboard/internal/service"
	"github.com/jimmeey/expiry-dashboard/migrations"
)

// maxBodySize caps annotation request bodies; the largest legitimate body
// is a few kilobytes of notes and tags.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Row store --------------------------------------------------------
	var store rowfeed.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := openPostgres(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to open row store", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = pg.NewStore(pool)
		slog.Info("row store ready", "backend", cfg.StoreBackend)
	default:
		store = sheets.NewClient(sheets.Config{
			ClientID:        cfg.SheetsClientID,
			ClientSecret:    cfg.SheetsClientSecret,
			RefreshToken:    cfg.SheetsRefreshToken,
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			MemberSheet:     cfg.SheetsMemberSheet,
			AnnotationSheet: cfg.SheetsAnnotationSheet,
		}, nil, logger)
		slog.Info("row store ready", "backend", cfg.StoreBackend,
			"spreadsheet", cfg.SheetsSpreadsheetID)
	}

	// --- Services ---------------------------------------------------------
	cache := merge.NewStore()
	svc := service.NewMembershipService(store, cache, logger)

	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go service.NewRefresher(svc, cfg.RefreshInterval, logger).Run(refreshCtx)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body cap. RequestID generates a trace ID per request; Recoverer turns
	// panics into HTTP 500 instead of crashing the process.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	handler.NewServer(svc).Register(r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
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
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openPostgres connects the pool, verifies reachability, and brings the
// schema up to date with the embedded goose migrations.
func openPostgres(dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		pool.Close()
		return nil, err
	}
	if err := goose.Up(db, "."); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
