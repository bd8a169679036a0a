// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/todoserver/internal/logging"
	"github.com/dmitrijs2005/todoserver/internal/server/config"
	"github.com/dmitrijs2005/todoserver/internal/server/httpserver"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoserver/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *httpserver.Server
}

// NewApp connects to MongoDB, ensures indexes and builds the HTTP server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	rm, err := repomanager.NewMongoRepositoryManager(ctx, c.MongoURI, c.DatabaseName, c.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(ctx, c, logger, rm)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) (*App, error) {
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(rm, c)
	ts := services.NewTodoService(rm)

	srv := httpserver.NewServer(httpserver.Options{
		Address:         c.EndpointAddr,
		AuthRateLimit:   c.AuthRateLimit,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, us, ts)

	return &App{config: c, logger: logger, repos: rm, server: srv}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a termination signal arrives or the
// HTTP server fails. The store connection is closed before it returns.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
