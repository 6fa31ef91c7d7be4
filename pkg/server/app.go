package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"
)

// Closer is a resource released on shutdown, such as the cache store.
type Closer interface {
	Close() error
}

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *xlogger.Logger
	httpServer *xhttp.Server
	closers    []Closer
}

// New creates a new App instance. Closers are released in reverse order
// after the HTTP server stops.
func New(cfg *config.Config, logger *xlogger.Logger, httpServer *xhttp.Server, closers ...Closer) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		closers:    closers,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, an
// interrupt arrives or the listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting stocklens",
		xlogger.String("env", a.cfg.Environment),
		xlogger.Int("port", a.cfg.Server.Port),
		xlogger.Bool("redis", a.cfg.Cache.Redis.Enabled),
		xlogger.Any("cors_origins", a.cfg.Server.CORSOrigins),
	)

	errCh := a.httpServer.Start()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			runErr = err
		}
	}

	return errors.Join(runErr, a.shutdown())
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down")

	var errs []error
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", xlogger.Error(err))
		errs = append(errs, err)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close error", xlogger.Error(err))
			errs = append(errs, err)
		}
	}

	a.logger.Info("shutdown complete")
	a.logger.RemoveCollector()
	return errors.Join(errs...)
}
