// Package votes provides the PostgreSQL-backed vote ledger.
package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/dbx"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgForeignKeyViolation is the SQLSTATE raised when candidate_id is unknown.
const pgForeignKeyViolation = "23503"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListVotesByVoter(ctx context.Context, voterHandle string) ([]models.Vote, error) {
	query := `
		SELECT voter_handle, candidate_id, value, created_at
		FROM votes
		WHERE voter_handle = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, voterHandle)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Vote
	for rows.Next() {
		var (
			v     models.Vote
			value string
		)
		if err := rows.Scan(&v.VoterHandle, &v.CandidateID, &value, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		v.Value = models.VoteValue(value)
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// InsertVote appends a judgment. Duplicates of (voter, candidate) are accepted.
func (r *PostgresRepository) InsertVote(ctx context.Context, v models.Vote) error {
	if !v.Value.Valid() {
		return fmt.Errorf("%w: invalid vote value %q", common.ErrorValidation, v.Value)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO votes (voter_handle, candidate_id, value, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, v.VoterHandle, v.CandidateID, string(v.Value), v.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("candidate %d: %w", v.CandidateID, common.ErrorNotFound)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
