package main

import (
	"fmt"

	"github.com/gdugdh24/sparring-backend/internal/config"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "sparring"

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "sparring matches athletes with compatible training partners",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "%s: %v\n", appName, err)
		return err
	}
	return nil
}

// bootstrap loads the configuration and builds the logger shared by every command.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		JSON:  cfg.Logging.JSON,
		File:  cfg.Logging.File,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	return cfg, log.With(zap.String("env", cfg.Server.Env)), nil
}
