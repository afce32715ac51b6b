// Package store declares the remote Identity Store and Vote Ledger contracts
// shared by the server repositories, the gRPC client and the in-memory
// implementation used in tests and offline mode.
package store

import (
	"context"

	"github.com/dmitrijs2005/trustvote/internal/models"
)

// IdentityStore is the durable table of identities keyed by normalized handle.
//
// Contract:
//   - ListIdentities returns every identity ordered by trust score, descending.
//   - FindByHandle returns common.ErrorNotFound when no row has the handle.
//   - InsertIdentity returns common.ErrHandleTaken when the handle exists and
//     common.ErrIDTaken when only the id collides.
//   - UpdateIdentity returns common.ErrorNotFound for an unknown id.
//   - IncrementTrust adds delta (> 0) atomically and returns the new score.
type IdentityStore interface {
	ListIdentities(ctx context.Context) ([]models.Identity, error)
	FindByHandle(ctx context.Context, handle string) (*models.Identity, error)
	InsertIdentity(ctx context.Context, in models.IdentityInsert) (int64, error)
	UpdateIdentity(ctx context.Context, id int64, up models.IdentityUpdate) error
	IncrementTrust(ctx context.Context, id int64, delta int64) (int64, error)
}

// VoteLedger is the append-only record of judgments.
type VoteLedger interface {
	ListVotesByVoter(ctx context.Context, voterHandle string) ([]models.Vote, error)
	InsertVote(ctx context.Context, v models.Vote) error
}

// Store bundles both remote collaborators.
type Store interface {
	IdentityStore
	VoteLedger
}
