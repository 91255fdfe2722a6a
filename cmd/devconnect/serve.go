package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Khan-Yazdani04/devconnect-lite/app"
	"github.com/Khan-Yazdani04/devconnect-lite/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API together with the scheduled orphan bid sweep.

Examples:
  # Serve with settings from ./.env
  devconnect serve

  # Serve from memory, no MongoDB needed
  STORE_BACKEND=memory JWT_SECRET=dev devconnect serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	application, err := app.NewBuilder(cfg).Build(ctx)
	if err != nil {
		return fmt.Errorf("app build error: %w", err)
	}

	if err := application.Start(); err != nil {
		return fmt.Errorf("app start error: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		logging.Logger.Infof("Event ID: SHUTDOWN_SIGNAL, Description: Received %s, shutting down", sig)
	case serveErr = <-application.Errors():
		logging.Logger.Errorf("Event ID: SERVER_FAILED, Description: HTTP server stopped: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SHUTDOWN_FAILED, Description: Server shutdown error: %v", err)
		return err
	}
	logging.Logger.Info("Event ID: SHUTDOWN_COMPLETE, Description: Server stopped")
	return serveErr
}
