package store

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ListOrderedByTrustDesc(t *testing.T) {
	s := NewMemoryStore(models.SeedIdentities()...)

	list, err := s.ListIdentities(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 11)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].TrustScore, list[i].TrustScore)
	}
	assert.Equal(t, "@atomic996", list[0].Handle)
}

func TestMemoryStore_InsertConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id, err := s.InsertIdentity(ctx, models.IdentityInsert{ID: 7, Handle: "@alice", Name: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = s.InsertIdentity(ctx, models.IdentityInsert{ID: 8, Handle: "@alice", Name: "alice"})
	require.ErrorIs(t, err, common.ErrHandleTaken)

	_, err = s.InsertIdentity(ctx, models.IdentityInsert{ID: 7, Handle: "@bob", Name: "bob"})
	require.ErrorIs(t, err, common.ErrIDTaken)

	got, err := s.FindByHandle(ctx, "@alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	_, err = s.FindByHandle(ctx, "@ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_UpdateNeverLowersTrust(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(models.Identity{ID: 1, Handle: "@a", Name: "a", TrustScore: 5})

	lower := int64(2)
	require.NoError(t, s.UpdateIdentity(ctx, 1, models.IdentityUpdate{Name: "A", TrustScore: &lower}))
	got, err := s.FindByHandle(ctx, "@a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, int64(5), got.TrustScore)

	require.ErrorIs(t, s.UpdateIdentity(ctx, 99, models.IdentityUpdate{Name: "x"}), common.ErrorNotFound)
}

func TestMemoryStore_IncrementTrustIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(models.Identity{ID: 1, Handle: "@a", Name: "a"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.IncrementTrust(ctx, 1, 1)
		}()
	}
	wg.Wait()

	got, err := s.FindByHandle(ctx, "@a")
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.TrustScore)

	_, err = s.IncrementTrust(ctx, 1, 0)
	require.ErrorIs(t, err, common.ErrorValidation)
	_, err = s.IncrementTrust(ctx, 404, 1)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_Votes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(models.SeedIdentities()...)

	require.NoError(t, s.InsertVote(ctx, models.Vote{VoterHandle: "@alice", CandidateID: 2, Value: models.VotePositive}))
	require.NoError(t, s.InsertVote(ctx, models.Vote{VoterHandle: "@alice", CandidateID: 2, Value: models.VotePositive}))
	require.NoError(t, s.InsertVote(ctx, models.Vote{VoterHandle: "@carol", CandidateID: 3, Value: models.VoteNegative}))

	votes, err := s.ListVotesByVoter(ctx, "@alice")
	require.NoError(t, err)
	assert.Len(t, votes, 2, "ledger tolerates duplicates")
	assert.False(t, votes[0].CreatedAt.IsZero())

	require.ErrorIs(t, s.InsertVote(ctx, models.Vote{VoterHandle: "@alice", CandidateID: 2, Value: "MAYBE"}), common.ErrorValidation)
	require.ErrorIs(t, s.InsertVote(ctx, models.Vote{VoterHandle: "@alice", CandidateID: 404, Value: models.VoteNegative}), common.ErrorNotFound)
}
