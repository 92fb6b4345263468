// Package main is the entry point for the lunar calendar API server.
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

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/lunar-calendar/internal/api"
	"github.com/zapponejosh/lunar-calendar/internal/config"
	"github.com/zapponejosh/lunar-calendar/internal/database"
	"github.com/zapponejosh/lunar-calendar/internal/logger"
	"github.com/zapponejosh/lunar-calendar/lunar"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting lunar calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.Bool("traditional", cfg.Traditional),
		slog.String("timezone", cfg.Timezone),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("lunar calendar API stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Lunar calendar
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	cal := lunar.New(
		lunar.WithTraditional(cfg.Traditional),
		lunar.WithLocation(loc),
		lunar.WithLogger(log),
	)

	handlers := api.NewHandlers(db, cal, cfg, log)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("lunar calendar API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
