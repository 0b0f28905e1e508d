package main

import (
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/database"
	"github.com/gdugdh24/sparring-backend/internal/repository/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables if they do not exist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		db, err := database.NewPostgresDB(cmd.Context(), &cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			log.Error("migration failed", zap.Error(err))
			return err
		}

		log.Info("schema up to date", zap.String("database", cfg.Database.DBName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
