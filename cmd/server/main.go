package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/highscores-api/internal/adapter/api"
	"github.com/user/highscores-api/internal/adapter/metrics"
	"github.com/user/highscores-api/internal/adapter/repository/postgres"
	"github.com/user/highscores-api/internal/adapter/repository/sqlite"
	"github.com/user/highscores-api/internal/domain"
	"github.com/user/highscores-api/internal/pkg/config"
	"github.com/user/highscores-api/internal/pkg/logger"
	"github.com/user/highscores-api/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.New()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	db, games, scores, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// --- Use Cases ---
	registry := usecase.NewRegistry(games, logger, m)
	ledger := usecase.NewLedger(scores, games, logger, m)
	guard := usecase.NewGuard(cfg.AdminToken)

	// --- Admin & Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- API Server ---
	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewRouter(logger, m, registry, ledger, guard),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting highscores API server", "addr", apiServer.Addr, "driver", cfg.DBDriver)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}

// openStore connects to the configured database and builds the repositories.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, domain.GameRepository, domain.HighscoreRepository, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return db, postgres.NewGameRepository(db, logger), postgres.NewHighscoreRepository(db), nil
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return db, sqlite.NewGameRepository(db, logger), sqlite.NewHighscoreRepository(db), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
