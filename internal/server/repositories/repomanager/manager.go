// Package repomanager vends the server repositories and owns the database
// lifecycle around them: readiness, schema migrations and schema version.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trustvote/internal/dbx"
	"github.com/dmitrijs2005/trustvote/internal/server/repositories/identities"
	"github.com/dmitrijs2005/trustvote/internal/server/repositories/votes"
)

type RepositoryManager interface {
	WaitReady(ctx context.Context, db *sql.DB) error
	RunMigrations(ctx context.Context, db *sql.DB) error
	SchemaVersion(ctx context.Context, db *sql.DB) (int64, error)
	Identities(db dbx.DBTX) identities.Repository
	Votes(db dbx.DBTX) votes.Repository
}
