package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odyssey-erp/catalog-admin/internal/app"
	"github.com/odyssey-erp/catalog-admin/internal/catalogapi"
	"github.com/odyssey-erp/catalog-admin/internal/platform/db"
	"github.com/odyssey-erp/catalog-admin/internal/platform/server"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := catalogapi.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(&app.Config{LogFormat: cfg.LogFormat})

	var repo catalogapi.Repository
	if cfg.PGDSN == "" {
		logger.Info("using in-memory product store")
		repo = catalogapi.NewMemoryRepository()
	} else {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		pgRepo := catalogapi.NewPostgresRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema", slog.Any("error", err))
			os.Exit(1)
		}
		repo = pgRepo
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           catalogapi.NewServer(repo, logger, cfg.Envelope).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.Run(ctx, logger, srv); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
