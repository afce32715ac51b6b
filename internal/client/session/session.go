// Package session persists the per-device session in the local key/value
// store: the active handle, the lifetime vote counter and the device
// fingerprint. The session is never merged from the remote store.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/trustvote/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustvote/internal/dbx"
)

// Keys in the local store.
const (
	KeyUser        = "bulk_v8_user"
	KeyVotes       = "bulk_v8_votes_count"
	KeyFingerprint = "bulk_device_fingerprint"
)

type Store struct {
	repo metadata.Repository
	db   *sql.DB
}

// NewStore keeps the session in repo.
func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// NewSQLiteStore keeps the session in the kv_store table of db. Clear runs
// in a single transaction.
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{repo: metadata.NewSQLiteRepository(db), db: db}
}

// Handle returns the persisted active handle, or "" when logged out.
func (s *Store) Handle(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return "", fmt.Errorf("session handle: %w", err)
	}
	return string(v), nil
}

func (s *Store) SetHandle(ctx context.Context, handle string) error {
	return s.repo.Set(ctx, KeyUser, []byte(handle))
}

// VoteCount returns the lifetime vote counter. A missing or unparsable value
// reads as zero.
func (s *Store) VoteCount(ctx context.Context) (int, error) {
	v, err := s.repo.Get(ctx, KeyVotes)
	if err != nil {
		return 0, fmt.Errorf("session vote count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

// SetVoteCount persists n as decimal text.
func (s *Store) SetVoteCount(ctx context.Context, n int) error {
	return s.repo.Set(ctx, KeyVotes, []byte(strconv.Itoa(n)))
}

// Fingerprint returns the stored device fingerprint, deriving and storing
// one with derive on first use.
func (s *Store) Fingerprint(ctx context.Context, derive func() string) (string, error) {
	v, err := s.repo.Get(ctx, KeyFingerprint)
	if err != nil {
		return "", fmt.Errorf("session fingerprint: %w", err)
	}
	if len(v) > 0 {
		return string(v), nil
	}
	fp := derive()
	if err := s.repo.Set(ctx, KeyFingerprint, []byte(fp)); err != nil {
		return "", err
	}
	return fp, nil
}

// Clear logs out: the handle and the vote counter are removed. The device
// fingerprint and the enrichment cache survive.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return clearKeys(ctx, s.repo)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return clearKeys(ctx, metadata.NewSQLiteRepository(tx))
	})
}

func clearKeys(ctx context.Context, repo metadata.Repository) error {
	for _, k := range []string{KeyUser, KeyVotes} {
		if err := repo.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
