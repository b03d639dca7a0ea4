package main

import (
	"fmt"

	"budgetbuddy-go/internal/app"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func seedCategoriesCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "seed-categories",
		Short: "Create the default categories for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := uuid.Parse(userID); err != nil {
				return fmt.Errorf("--user must be a uuid: %w", err)
			}

			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			application, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			created, err := application.SeedCategories(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
			log.Info("categories.seed: done", "user_id", userID, "created", created)
			fmt.Fprintf(cmd.OutOrStdout(), "created %d categories\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to seed")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
