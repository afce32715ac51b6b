// Package server wires the remote store: PostgreSQL repositories behind the
// TrustStore gRPC service, plus S3 presigning for passport images.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/server/config"
	"github.com/dmitrijs2005/trustvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trustvote/internal/server/services"

	gs "github.com/dmitrijs2005/trustvote/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	store     *services.StoreService
	passports *services.PassportService
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.WaitReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	if v, err := rm.SchemaVersion(ctx, db); err == nil {
		logger.Info(ctx, "database schema ready", "version", v)
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		store:     services.NewStoreService(db, rm, logger),
		passports: services.NewPassportService(c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.store, app.passports)
	if err != nil {
		return err
	}
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server stopped", "error", err)
		return err
	}
	return nil
}
