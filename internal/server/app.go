// Package server initializes and runs the ledger application: it selects the
// storage backend, wires services, and starts the HTTP server with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmsantos/transferd/internal/logging"
	"github.com/dmsantos/transferd/internal/server/accounts"
	"github.com/dmsantos/transferd/internal/server/auth"
	"github.com/dmsantos/transferd/internal/server/config"
	"github.com/dmsantos/transferd/internal/server/httpapi"
	"github.com/dmsantos/transferd/internal/server/shared/db"
	"github.com/dmsantos/transferd/internal/server/transfers"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	accountService  *accounts.Service
	authService     *auth.Service
	transferService *transfers.Service
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var manager db.RepositoryManager
	if c.DatabaseDSN == "" {
		manager = db.NewInMemoryRepositoryManager()
	} else {
		var err error
		manager, err = db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	as := accounts.NewService(manager.Conn(), manager, c)
	aus := auth.NewService(manager.Accounts(nil), c)
	ts := transfers.NewService(manager.Conn(), manager)

	return &App{
		config:          c,
		logger:          logger,
		accountService:  as,
		authService:     aus,
		transferService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.accountService, app.authService, app.transferService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
