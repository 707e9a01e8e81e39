// Package server wires the task store together: storage backend, domain
// service and the HTTP API. It handles migrations on start and a graceful
// shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/server/config"
	"github.com/dmitrijs2005/corenotes/internal/server/httpapi"
	"github.com/dmitrijs2005/corenotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	service *tasks.Service
	server  *http.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, true)

	rm, err := repomanager.NewRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) *App {
	gin.SetMode(gin.ReleaseMode)
	svc := tasks.NewService(rm.Tasks())
	srv := &http.Server{
		Addr:    c.EndpointAddrHTTP,
		Handler: httpapi.NewRouter(svc, logger, c.AllowedOrigins),
	}
	return &App{config: c, logger: logger, repos: rm, service: svc, server: srv}
}

// Run migrates the store, serves HTTP until ctx is done or a signal arrives,
// then drains in-flight requests and closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	if err := app.repos.RunMigrations(ctx); err != nil {
		_ = app.repos.Close()
		return fmt.Errorf("migrations error: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(context.Background(), "Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown error: %w", err))
		}
		if err := app.repos.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close error: %w", err))
		}
		return errors.Join(errs...)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(context.Background(), err.Error())
	}
	return err
}
