// Package identities provides the PostgreSQL-backed identity store.
package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/dbx"
	"github.com/dmitrijs2005/trustvote/internal/models"
)

// Constraint names from migrations/00001_candidates.sql.
const (
	ConstraintPrimaryKey = "candidates_pkey"
	ConstraintHandle     = "candidates_handle_key"
)

// PostgresRepository implements identity storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	query := `
		SELECT id, handle, name, trust_score, created_at
		FROM candidates
		ORDER BY trust_score DESC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Identity
	for rows.Next() {
		var i models.Identity
		if err := rows.Scan(&i.ID, &i.Handle, &i.Name, &i.TrustScore, &i.FirstSeen); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, i.Sanitize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByHandle(ctx context.Context, handle string) (*models.Identity, error) {
	query := `
		SELECT id, handle, name, trust_score, created_at
		FROM candidates
		WHERE handle = $1
	`
	var i models.Identity
	err := r.db.QueryRowContext(ctx, query, handle).Scan(&i.ID, &i.Handle, &i.Name, &i.TrustScore, &i.FirstSeen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	i = i.Sanitize()
	return &i, nil
}

// InsertIdentity creates a row with the caller-chosen id. Unique violations
// are classified by constraint name so the caller can choose between the
// update path (handle taken) and a retry with a new id (id taken).
func (r *PostgresRepository) InsertIdentity(ctx context.Context, in models.IdentityInsert) (int64, error) {
	query := `
		INSERT INTO candidates (id, handle, name, trust_score, fingerprint)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	score := in.TrustScore
	if score < 0 {
		score = 0
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query, in.ID, in.Handle, in.Name, score, in.Fingerprint).Scan(&id)
	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			if constraint == ConstraintHandle {
				return 0, common.ErrHandleTaken
			}
			return 0, common.ErrIDTaken
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) UpdateIdentity(ctx context.Context, id int64, up models.IdentityUpdate) error {
	var (
		res sql.Result
		err error
	)
	if up.TrustScore == nil {
		res, err = r.db.ExecContext(ctx, `UPDATE candidates SET name = $2 WHERE id = $1`, id, up.Name)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE candidates SET name = $2, trust_score = GREATEST(trust_score, $3) WHERE id = $1`,
			id, up.Name, *up.TrustScore)
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// IncrementTrust adds delta in a single statement, so concurrent voters
// cannot lose each other's increments.
func (r *PostgresRepository) IncrementTrust(ctx context.Context, id int64, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("%w: delta must be positive", common.ErrorValidation)
	}

	query := `
		UPDATE candidates SET trust_score = trust_score + $2
		WHERE id = $1
		RETURNING trust_score
	`
	var score int64
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return score, nil
}
