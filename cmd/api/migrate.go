package main

import (
	"github.com/spf13/cobra"

	"github.com/4oBuko/spycats/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the cats, missions and targets tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg.Database, logger.Named("gorm"), cfg.Debug)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		logger.Infow("database migrated", "driver", cfg.Database.Driver)
		return nil
	},
}
