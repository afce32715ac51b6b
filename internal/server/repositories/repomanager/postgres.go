package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/trustvote/internal/dbx"
	"github.com/dmitrijs2005/trustvote/internal/server/migrations"
	"github.com/dmitrijs2005/trustvote/internal/server/repositories/identities"
	"github.com/dmitrijs2005/trustvote/internal/server/repositories/votes"
)

const (
	defaultReadyRetries = 5
	defaultReadyBackoff = 200 * time.Millisecond
)

// PostgresRepositoryManager binds the candidates and votes repositories to
// PostgreSQL.
type PostgresRepositoryManager struct {
	readyRetries uint64
	readyBackoff time.Duration
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		readyRetries: defaultReadyRetries,
		readyBackoff: defaultReadyBackoff,
	}
}

func (m *PostgresRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Votes(db dbx.DBTX) votes.Repository {
	return votes.NewPostgresRepository(db)
}

// WaitReady pings db with exponential backoff. The database container
// usually comes up after the server does.
func (m *PostgresRepositoryManager) WaitReady(ctx context.Context, db *sql.DB) error {
	b := retry.WithMaxRetries(m.readyRetries, retry.NewExponential(m.readyBackoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// gooseUpContext and gooseVersion are seams for tests.
var (
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	gooseVersion = goose.GetDBVersionContext
)

func setupGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}

// RunMigrations applies the embedded candidates and votes migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func (m *PostgresRepositoryManager) SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	return gooseVersion(ctx, db)
}
