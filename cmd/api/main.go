// Package main is the entry point for the feast calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zapponejosh/feastcal/internal/api"
	"github.com/zapponejosh/feastcal/internal/cache"
	"github.com/zapponejosh/feastcal/internal/config"
	"github.com/zapponejosh/feastcal/internal/database"
	"github.com/zapponejosh/feastcal/internal/i18n"
	"github.com/zapponejosh/feastcal/internal/logger"
	"github.com/zapponejosh/feastcal/internal/metrics"
	"github.com/zapponejosh/feastcal/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	log.Info("starting feast calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.String("default_lang", cfg.DefaultLang),
	)

	catalog, err := i18n.Load(cfg.DefaultLang, log)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("database ready", slog.Int("migrations_applied", applied))

	var store interface {
		cache.Cache
		api.HealthChecker
	}
	if cfg.UseRedis() {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, "feastcal:")
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rc.Close()
		store = rc
		log.Info("using redis cache")
	} else {
		store = cache.NewMemory()
		log.Info("using in-process cache")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svc := service.New(service.Options{
		Catalog: catalog,
		Cache:   store,
		TTL:     cfg.CacheTTL,
		Logger:  log,
		Metrics: m,
	})

	handlers := api.NewHandlers(svc, db, store, m, cfg, log)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("feast calendar API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
