package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/sparring-backend/internal/infrastructure/container"
	"github.com/gdugdh24/sparring-backend/internal/repository/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  serve,
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "apply the database schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := container.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", zap.Error(err))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("error closing application", zap.Error(err))
		}
	}()

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := postgres.Migrate(ctx, app.DB); err != nil {
			log.Error("migration failed", zap.Error(err))
			return err
		}
		log.Info("schema up to date")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
		return err
	}

	log.Info("server exited properly")
	return nil
}
