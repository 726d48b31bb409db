// Package app assembles the microblog API server and runs it until its
// context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"microblog/internal/api"
	"microblog/internal/config"
	"microblog/internal/store"
	"microblog/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	config *config.Config
	logger *logrus.Logger
	store  *store.Store
	api    *api.API
	server *http.Server
}

func NewApplication(cfg *config.Config, logger *logrus.Logger, s *store.Store, a *api.API) *Application {
	return &Application{
		config: cfg,
		logger: logger,
		store:  s,
		api:    a,
	}
}

// Handler is the full request chain: tracing, then the router.
func (app *Application) Handler() http.Handler {
	return telemetry.Middleware(app.api.Router())
}

// Run serves HTTP until ctx is done, then drains in-flight requests and
// releases the database and the tracer.
func (app *Application) Run(ctx context.Context) error {
	shutdownTracing, err := telemetry.InitTracing(ctx, app.config.Tracing)
	if err != nil {
		app.closeStore()
		return err
	}

	listener, err := net.Listen("tcp", app.config.Port)
	if err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.shutdown(shutdownCtx, shutdownTracing)
		return fmt.Errorf("failed to listen on %s: %w", app.config.Port, err)
	}

	app.server = &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	app.logger.WithField("addr", listener.Addr().String()).Info("Starting server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.server.Serve(listener)
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-ctx.Done():
		app.logger.Info("Shutting down server")
		err = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.shutdown(shutdownCtx, shutdownTracing)
	return err
}

func (app *Application) shutdown(ctx context.Context, shutdownTracing telemetry.ShutdownFunc) {
	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			app.logger.WithError(err).Error("Failed to shut down server")
		}
	}
	if err := shutdownTracing(ctx); err != nil {
		app.logger.WithError(err).Error("Failed to flush traces")
	}
	app.closeStore()
	app.logger.Info("Server stopped")
}

func (app *Application) closeStore() {
	if err := app.store.Close(); err != nil {
		app.logger.WithError(err).Error("Failed to close database")
	}
}
