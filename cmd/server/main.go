package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/tohands-inventory/internal/config"
	"github.com/JonMunkholm/tohands-inventory/internal/core"
	_ "github.com/JonMunkholm/tohands-inventory/internal/core/formats" // Register export formats
	"github.com/JonMunkholm/tohands-inventory/internal/logging"
	"github.com/JonMunkholm/tohands-inventory/internal/web"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"session_idle_timeout", cfg.Session.IdleTimeout.String(),
		"redis_enabled", cfg.Redis.Enabled(),
		"export_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()

	// Choose the session store
	var store core.SessionStore
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		// Verify connection
		if err := client.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		slog.Info("using redis session store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		store = core.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Session.IdleTimeout)
	} else {
		slog.Info("using in-memory session store")
		store = core.NewMemoryStore(cfg.Session.IdleTimeout)
	}

	limiter := core.NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWait)
	service := core.NewService(store, limiter)

	// Log registered formats
	for _, f := range core.All() {
		slog.Debug("export format registered", "key", f.Key, "content_type", f.ContentType)
	}
	slog.Info("export formats registered", "count", core.FormatCount())

	// Create server with config
	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartSessionSweeper(jobCtx, cfg.Session.SweepInterval)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let downloads being built finish (with timeout)
		exportStatus := service.ExportStatus()
		if exportStatus.Active > 0 {
			slog.Info("waiting for exports to complete", "active", exportStatus.Active)
			if err := service.WaitForExports(shutdownCtx); err != nil {
				slog.Warn("exports did not complete in time", "error", err)
			} else {
				slog.Info("all exports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server error", "error", err)
		cancelJobs()
		os.Exit(1)
	}

	<-stopped
	slog.Info("server stopped")
}
