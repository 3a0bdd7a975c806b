// Package server wires configuration, logging, storage and services
// together and runs the REST API next to the gRPC health endpoint until the
// process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskcal/internal/logging"
	"github.com/dmitrijs2005/taskcal/internal/server/config"
	"github.com/dmitrijs2005/taskcal/internal/server/health"
	"github.com/dmitrijs2005/taskcal/internal/server/httpapi"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskcal/internal/server/services"
)

// openDB is a seam for tests; the pgx driver is registered by repomanager.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// App owns the database handle and both servers for one process run.
type App struct {
	config       *config.Config
	logger       logging.Logger
	logCloser    io.Closer
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	httpServer   *httpapi.Server
	healthServer *health.Server
}

// NewApp builds the logger, opens the database and wires services into the
// HTTP and health servers. Nothing listens until Run.
func NewApp(cfg *config.Config) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := openDB(cfg.DatabaseDSN)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	httpapi.ConfigureMode(cfg.LogLevel)
	rm := repomanager.NewPostgresRepositoryManager()

	svc := httpapi.Services{
		Users:      services.NewUserService(db, rm, cfg),
		Blueprints: services.NewBlueprintService(db, rm),
		Calendar:   services.NewCalendarService(db, rm, cfg),
		Shares:     services.NewShareService(db, rm, cfg),
	}

	return &App{
		config:       cfg,
		logger:       logger,
		logCloser:    logCloser,
		db:           db,
		repomanager:  rm,
		httpServer:   httpapi.NewServer(cfg.EndpointAddrHTTP, logger, cfg, svc),
		healthServer: health.NewServer(cfg.EndpointAddrGRPC, logger, db),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// startServer runs one listener; its failure brings the whole app down and
// is reported on errs.
func (app *App) startServer(ctx context.Context, cancelFunc context.CancelFunc, errs chan<- error, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		errs <- fmt.Errorf("%s server error: %w", name, err)
		cancelFunc()
	}
}

// Run applies migrations, then serves until ctx is cancelled, a signal
// arrives or one of the servers fails. The first server failure is
// returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return fmt.Errorf("migrations error: %w", err)
	}

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startServer(ctx, cancelFunc, errs, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.startServer(ctx, cancelFunc, errs, "grpc_health", app.healthServer.Run)
	}()

	wg.Wait()
	close(errs)

	app.logger.Info(context.Background(), "App stopped")
	return <-errs
}

func (app *App) close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	_ = app.logCloser.Close()
}
