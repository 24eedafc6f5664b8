package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Wardrobe/internal/api"
	"github.com/MikeSquared-Agency/Wardrobe/internal/broker"
	"github.com/MikeSquared-Agency/Wardrobe/internal/colony"
	"github.com/MikeSquared-Agency/Wardrobe/internal/config"
	"github.com/MikeSquared-Agency/Wardrobe/internal/defs"
	"github.com/MikeSquared-Agency/Wardrobe/internal/hermes"
	"github.com/MikeSquared-Agency/Wardrobe/internal/store"
)

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, error) {
	if cfg.Driver == "postgres" {
		return store.NewPostgresStore(ctx, cfg.URL)
	}
	return store.NewSQLiteStore(cfg.URL)
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stat and work type catalog
	stats, err := defs.Load(cfg.Defaults.StatsCatalog)
	if err != nil {
		logger.Error("failed to load stats catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("stats catalog loaded", "stats", len(stats.Stats()), "work_types", len(stats.WorkTypes()))

	// Database
	db, err := openStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Colony host
	var colonyClient colony.Client
	if cfg.Colony.URL != "" {
		colonyClient = colony.NewHTTPClient(cfg.Colony.URL, cfg.Colony.Token)
	}

	// Broker
	b := broker.New(db, hermesClient, colonyClient, stats, cfg, logger)
	if err := b.Bootstrap(ctx); err != nil {
		logger.Error("failed to restore state", "error", err)
		os.Exit(1)
	}
	b.Start(ctx)
	defer b.Stop()
	logger.Info("broker started", "outfits", b.Outfits().Len(), "sync_interval", cfg.SyncInterval())

	b.SetupSubscriptions()

	// API server
	router := api.NewRouter(b, cfg.Server.AdminToken, cfg.Server.RateLimit, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
