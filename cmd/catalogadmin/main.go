package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/catalog-admin/internal/app"
	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/observability"
	"github.com/odyssey-erp/catalog-admin/internal/platform/cache"
	"github.com/odyssey-erp/catalog-admin/internal/platform/server"
	"github.com/odyssey-erp/catalog-admin/internal/products"
	"github.com/odyssey-erp/catalog-admin/internal/shared"
	"github.com/odyssey-erp/catalog-admin/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Keep serving; requests fall back to unsaved sessions until redis is back.
		logger.Warn("redis ping", slog.Any("error", err))
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessions := shared.NewSessionStore(redisClient, "catalog_admin_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrf := shared.NewCSRFGuard(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	catalogClient, err := catalog.New(cfg.CatalogAPIURL,
		catalog.WithTimeout(cfg.CatalogAPITimeout),
		catalog.WithObserver(metrics),
		catalog.WithLogger(logger),
	)
	if err != nil {
		logger.Error("catalog client", slog.Any("error", err))
		os.Exit(1)
	}

	display, err := products.NewDisplay(cfg.DisplayLocale, cfg.CurrencySymbol)
	if err != nil {
		logger.Error("display locale", slog.Any("error", err))
		os.Exit(1)
	}

	productsHandler := products.NewHandler(logger, catalogClient, display, templates, csrf)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Sessions:        sessions,
		CSRF:            csrf,
		ProductsHandler: productsHandler,
		Metrics:         metrics,
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	logger.Info("catalog api", slog.String("url", catalogClient.BaseURL()))
	if err := server.Run(ctx, logger, srv); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
