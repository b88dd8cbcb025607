package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/taskform/internal/config"
	"github.com/deppfellow/taskform/internal/database"
	"github.com/deppfellow/taskform/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
