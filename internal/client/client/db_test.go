package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_MigratesKVStore(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "trustvote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.True(t, tableExists(t, db, "goose_db_version"))
	require.True(t, tableExists(t, db, "kv_store"))

	_, err = db.ExecContext(ctx, `INSERT INTO kv_store(key, value) VALUES ('bulk_v8_user', '@alice')`)
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = 'bulk_v8_user'`).Scan(&v))
	assert.Equal(t, "@alice", v)

	_, err = db.ExecContext(ctx, `INSERT INTO kv_store(key, value) VALUES ('bulk_v8_user', '@bob')`)
	assert.Error(t, err, "key is the primary key")
}

func TestInitDatabase_UnreachablePath(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "trustvote.db")
	_, err := InitDatabase(context.Background(), dsn)
	require.ErrorIs(t, err, ErrLocalDataNotAvailable)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "trustvote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "kv_store"))
}

func TestInitDatabase_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "trustvote.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO kv_store(key, value) VALUES ('bulk_v8_votes_count', '3')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = 'bulk_v8_votes_count'`).Scan(&v))
	assert.Equal(t, "3", v)
}
