// Package main is the entry point for the Commitly API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/commitly/backend/config"
	"github.com/commitly/backend/internal/infra/db"
	"github.com/commitly/backend/internal/infra/dependency"
	"github.com/commitly/backend/internal/integration/persistence"
)

const (
	shutdownTimeout = 10 * time.Second
	tokenSweepEvery = time.Hour
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.Server.Environment))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Commitly API stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(environment string) *slog.Logger {
	if environment == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func run(cfg *config.Config) error {
	slog.Info("Starting Commitly API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancelConnect := context.WithTimeout(ctx, 5*time.Second)
	database, err := db.OpenPostgres(connectCtx, cfg.Database)
	cancelConnect()
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(database); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	// Redis is optional; completions fall back to an in-process lock
	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, running without redis", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
	}

	injector, err := dependency.NewInjector(cfg, database, redisClient)
	if err != nil {
		return fmt.Errorf("failed to wire dependencies: %w", err)
	}

	var jobs sync.WaitGroup
	if injector.EmailWorker != nil {
		jobs.Add(1)
		go func() {
			defer jobs.Done()
			injector.EmailWorker.Start(ctx)
		}()
	}
	jobs.Add(1)
	go func() {
		defer jobs.Done()
		sweepRefreshTokens(ctx, injector.RefreshTokens)
	}()
	injector.RateLimiter.StartCleanup(ctx.Done())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      injector.Router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		jobs.Wait()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	jobs.Wait()
	slog.Info("Server exited properly")
	return nil
}

// sweepRefreshTokens deletes expired refresh tokens until ctx is cancelled.
func sweepRefreshTokens(ctx context.Context, tokens persistence.TokenRepository) {
	ticker := time.NewTicker(tokenSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.PurgeExpired(ctx, time.Now().UTC())
			if err != nil {
				slog.Error("Failed to purge expired refresh tokens", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("Purged expired refresh tokens", "removed", removed)
			}
		}
	}
}
