package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/quill/internal/cli"
	httpAdapter "github.com/aretw0/quill/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves /tokenize, /classify, /describe, /health and (unless disabled) /metrics.`,
	RunE: func(cmd *cobra.Command, argv []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		rt, err := cli.Build(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := []httpAdapter.Option{httpAdapter.WithLogger(rt.Logger)}
		if cfg.HTTP.Metrics {
			opts = append(opts, httpAdapter.WithMetrics(rt.Metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           httpAdapter.NewHandler(rt.Engine, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			rt.Logger.Info("starting quill server", "addr", srv.Addr, "metrics", cfg.HTTP.Metrics)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return err
		case <-ctx.Done():
			rt.Logger.Info("shutting down", "signal", ctx.Signal())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				rt.Logger.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			rt.Logger.Info("quill server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides http.addr)")
}
