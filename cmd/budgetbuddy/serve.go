package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"budgetbuddy-go/internal/app"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides HTTP_PORT)")
	return cmd
}

// runServe serves until ctx is cancelled or the listener fails, then drains
// in-flight requests.
func runServe(ctx context.Context, port string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.HTTPPort = port
	}
	log.Info("app: starting", "env", cfg.Env)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return err
	}
	srv := application.HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("app: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http: graceful shutdown failed", "err", err)
			return err
		}
		return nil
	})

	runErr := g.Wait()
	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		runErr = errors.Join(runErr, err)
	}
	if runErr == nil {
		log.Info("app: stopped")
	}
	return runErr
}
