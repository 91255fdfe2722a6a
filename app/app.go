package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/Khan-Yazdani04/devconnect-lite/config"
	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/metrics"
	"github.com/Khan-Yazdani04/devconnect-lite/scheduler"
	"github.com/Khan-Yazdani04/devconnect-lite/services"
)

type App struct {
	Config    *config.Config
	Stores    Stores
	Metrics   *metrics.Metrics
	Projects  *services.ProjectService
	Sweeper   *services.SweepService
	Scheduler *scheduler.Scheduler
	Server    *http.Server

	serverErr chan error
}

func (a *App) Start() error {
	if err := a.Scheduler.Start(); err != nil {
		return err
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_STARTED, Description: HTTP server listening on %s", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serverErr <- err
		}
	}()

	return nil
}

// Errors reports a server that stopped on its own.
func (a *App) Errors() <-chan error {
	return a.serverErr
}

func (a *App) Shutdown(ctx context.Context) error {
	a.Scheduler.Stop()
	if err := a.Server.Shutdown(ctx); err != nil {
		return err
	}
	return a.Close(ctx)
}

// Close releases the stores without touching the server.
func (a *App) Close(ctx context.Context) error {
	if a.Stores.Close == nil {
		return nil
	}
	return a.Stores.Close(ctx)
}
