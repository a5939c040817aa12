package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mailmorph/mailmorph/internal/config"
	"github.com/mailmorph/mailmorph/internal/core"
	"github.com/mailmorph/mailmorph/internal/logging"
	"github.com/mailmorph/mailmorph/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"storage_dir", cfg.Storage.Directory,
		"max_file_size", cfg.Storage.MaxFileSize,
		"max_rows", cfg.Upload.MaxRows,
		"max_file_age", cfg.Retention.MaxFileAge,
		"cleanup_interval", cfg.Retention.CleanupInterval,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	store, err := core.NewStore(cfg.Storage.Directory, cfg.Storage.MaxFileSize, cfg.Storage.AllowedExtensions)
	if err != nil {
		slog.Error("failed to initialize storage directory", "error", err)
		os.Exit(1)
	}
	slog.Info("storage ready", "dir", store.Dir())

	service := core.NewService(store, cfg)
	server := web.NewServer(service, cfg)

	// Cancellable context for the background janitor
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	janitor := core.NewJanitor(store, cfg.Retention.MaxFileAge, cfg.Retention.CleanupInterval)
	go janitor.Run(jobCtx)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := service.ActiveUploads(); active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
			if err := service.WaitForUploads(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			} else {
				slog.Info("all uploads completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
