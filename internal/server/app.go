// Package server initializes and runs the placement portal server: it opens
// the database, applies migrations, builds the services and runs the REST
// API, the gRPC health endpoint and the database health monitor until the
// process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/logging"
	"github.com/dmitrijs2005/placementportal/internal/server/config"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/placementportal/internal/server/rest"
	"github.com/dmitrijs2005/placementportal/internal/server/services"

	gs "github.com/dmitrijs2005/placementportal/internal/server/grpc"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	credentialService  *services.CredentialService
	applicationService *services.ApplicationService
}

// NewApp validates c, connects to the database and applies pending
// migrations. The caller owns the returned App and must call Close.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(c.DatabaseDriver, repomanager.WithLogger(l))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &App{
		config:             c,
		logger:             l,
		db:                 db,
		credentialService:  services.NewCredentialService(db, rm, c),
		applicationService: services.NewApplicationService(db, rm, c),
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
	s := rest.NewHTTPServer(app.config, app.logger, app.credentialService, app.applicationService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, s *gs.GRPCServer) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver,
		"strict_status_transitions", app.config.StrictStatusTransitions)

	app.initSignalHandler(cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, grpcServer)
	}()
	go func() {
		defer wg.Done()
		grpcServer.MonitorDatabase(ctx, app.db, app.config.HealthCheckInterval)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}

// Close releases the database pool.
func (app *App) Close() error {
	return app.db.Close()
}
