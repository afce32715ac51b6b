package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueViolation_Postgres(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		ok         bool
	}{
		{name: "nil", err: nil},
		{name: "plain", err: errors.New("boom")},
		{name: "unique", err: &pgconn.PgError{Code: "23505", ConstraintName: "candidates_handle_key"}, constraint: "candidates_handle_key", ok: true},
		{name: "wrapped unique", err: fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505", ConstraintName: "candidates_pkey"}), constraint: "candidates_pkey", ok: true},
		{name: "fk violation", err: &pgconn.PgError{Code: "23503", ConstraintName: "votes_candidate_id_fkey"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			constraint, ok := UniqueViolation(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.constraint, constraint)
		})
	}
}

func TestUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS u (k TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	_, err = db.ExecContext(context.Background(), `INSERT INTO u(k) VALUES ('a')`)
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(), `INSERT INTO u(k) VALUES ('a')`)
	require.Error(t, err)

	constraint, ok := UniqueViolation(err)
	require.True(t, ok, "expected unique violation, got %v", err)
	assert.Equal(t, "u.k", constraint)
}
