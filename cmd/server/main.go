// Command server loads an earthquake catalogue and serves Gutenberg-
// Richter statistics to the map/chart frontend.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-catalogue-service/internal/adapter/http"
	"github.com/couchcryptid/quake-catalogue-service/internal/catalogue"
	"github.com/couchcryptid/quake-catalogue-service/internal/config"
	"github.com/couchcryptid/quake-catalogue-service/internal/observability"
	"github.com/couchcryptid/quake-catalogue-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// One-time catalogue load. A malformed catalogue is fatal: there is
	// nothing to serve without one.
	cat, err := catalogue.Load(cfg.CataloguePath, cfg.CatalogueHeaderSkip, logger)
	if err != nil {
		logger.Error("failed to load catalogue", "path", cfg.CataloguePath, "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cat, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.AllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p.WarmUp(ctx)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
