package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"footfall/internal/api"
	"footfall/internal/config"
	"footfall/internal/engine"
	"footfall/internal/logging"
	"footfall/internal/metrics"
	"footfall/internal/service"
	"footfall/internal/watch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	loc, err := time.LoadLocation(cfg.Data.Location)
	if err != nil {
		return err
	}
	engine.SetCalendar(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	store := engine.NewStore()
	src := engine.NewSource(cfg.Data.Source, nil)
	datasets := service.NewDatasetService(store, src, cfg.Data.FetchTimeout, m, logger)

	// The API is live immediately and answers 503 until the first load lands.
	h := api.NewHandler(store, datasets, m)
	e := api.NewServer(cfg.Server, h, m, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server ready (data loading in background)", slog.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	datasets.Start(gctx)

	if _, isFile := src.(engine.FileSource); cfg.Data.Watch && isFile {
		g.Go(func() error {
			// Losing the watcher only disables automatic reloads.
			if err := watch.File(gctx, cfg.Data.Source, cfg.Data.Debounce, func() { datasets.Start(gctx) }); err != nil {
				logger.Warn("dataset watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		err := e.Shutdown(shutdownCtx)
		datasets.Wait()
		return err
	})

	return g.Wait()
}
