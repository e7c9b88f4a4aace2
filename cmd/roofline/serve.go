package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reusecanada/roofline/internal/server"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the measurement engine as an HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Flags().Changed("port"), port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port (overrides config)")
	return cmd
}

func runServe(portSet bool, port int) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if portSet {
		a.cfg.Server.Port = port
	}

	a.log.Info("Starting roofline service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)
	if a.solar == nil {
		a.log.Warn("No Google API key configured; /api/v1/analyze accepts inline segments only")
	}

	h := server.NewHandler(a.analyzer, a.solar, a.catalog, a.log)
	srv := server.New(a.cfg.Server, h, server.BuildInfo{Version: Version, BuildTime: BuildTime}, a.log)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			a.log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.log.Info("Server exited")
	return nil
}
