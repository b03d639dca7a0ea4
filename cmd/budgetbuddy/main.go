package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"budgetbuddy-go/internal/config"
	"budgetbuddy-go/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "budgetbuddy",
		Short:         "Personal budgeting API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(seedCategoriesCmd())
	return cmd
}

// bootstrap loads configuration and builds the logger it describes.
func bootstrap() (config.Config, logger.Logger, error) {
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.NewFromEnv()
	cfg, err := config.Load(log)
	if err != nil {
		return config.Config{}, nil, err
	}

	log = logger.NewFromOptions(logger.Options{
		Env:     cfg.Env,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "budgetbuddy-api",
	})
	return cfg, log, nil
}
