package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/taskform/internal/config"
	"github.com/deppfellow/taskform/internal/database"
	"github.com/deppfellow/taskform/internal/handler"
	"github.com/deppfellow/taskform/internal/logger"
	"github.com/deppfellow/taskform/internal/repository"
	"github.com/deppfellow/taskform/internal/router"
	"github.com/deppfellow/taskform/internal/server"
	"github.com/deppfellow/taskform/internal/service"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the email worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")

	return cmd
}

func serve(parent context.Context, skipMigrations bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !skipMigrations {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, services)

	srv.SetupHTTPServer(r)

	return runUntilStopped(ctx, &log, srv.Start, srv.Shutdown)
}

// runUntilStopped runs start until it returns or ctx is cancelled, then
// shuts down. A start failure is returned after shutdown so the process
// exits non-zero.
func runUntilStopped(
	ctx context.Context,
	log *zerolog.Logger,
	start func() error,
	shutdown func(context.Context) error,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- start()
	}()

	var startErr error
	select {
	case startErr = <-errCh:
		if startErr != nil {
			log.Error().Err(startErr).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if startErr != nil {
		return fmt.Errorf("server failed: %w", startErr)
	}

	log.Info().Msg("server exited properly")
	return nil
}
