package main

import (
	"budgetbuddy-go/internal/db"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			if down {
				return db.MigrateDown(cfg.DB.MigrateURL(), log)
			}
			return db.Migrate(cfg.DB.MigrateURL(), log)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration")
	return cmd
}
