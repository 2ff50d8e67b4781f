// Package server initializes and runs the guest store server: it selects
// a storage backend, runs migrations, serves the HTTP API and shuts down
// gracefully on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plannly/guestsync/internal/logging"
	"github.com/plannly/guestsync/internal/server/config"
	"github.com/plannly/guestsync/internal/server/httpapi"
	"github.com/plannly/guestsync/internal/server/shared/db"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	rm     db.RepositoryManager
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var rm db.RepositoryManager
	if cfg.InMemory {
		rm = db.NewInMemoryRepositoryManager()
	} else {
		var err error
		rm, err = db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	return &App{config: cfg, logger: logger, rm: rm}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting guest store server...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	router := httpapi.SetupRouter(app.rm, []byte(app.config.SecretKey), app.logger)
	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	if conn := app.rm.Conn(); conn != nil {
		if err := conn.Close(); err != nil {
			app.logger.Error(shutdownCtx, "db close error", "error", err)
		}
	}
}
