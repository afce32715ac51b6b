package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/models"
)

// MemoryStore is a mutex-guarded Store with the same constraint semantics as
// the PostgreSQL schema: unique id, unique handle, non-negative trust score.
type MemoryStore struct {
	mu         sync.Mutex
	identities map[int64]models.Identity
	byHandle   map[string]int64
	votes      []models.Vote
	now        func() time.Time
}

func NewMemoryStore(seed ...models.Identity) *MemoryStore {
	s := &MemoryStore{
		identities: make(map[int64]models.Identity),
		byHandle:   make(map[string]int64),
		now:        time.Now,
	}
	for _, i := range seed {
		s.identities[i.ID] = i
		s.byHandle[i.Handle] = i.ID
	}
	return s
}

func (s *MemoryStore) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Identity, 0, len(s.identities))
	for _, i := range s.identities {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].TrustScore != out[b].TrustScore {
			return out[a].TrustScore > out[b].TrustScore
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

func (s *MemoryStore) FindByHandle(ctx context.Context, handle string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byHandle[handle]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i := s.identities[id]
	return &i, nil
}

func (s *MemoryStore) InsertIdentity(ctx context.Context, in models.IdentityInsert) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHandle[in.Handle]; ok {
		return 0, common.ErrHandleTaken
	}
	if _, ok := s.identities[in.ID]; ok {
		return 0, common.ErrIDTaken
	}

	score := in.TrustScore
	if score < 0 {
		score = 0
	}
	s.identities[in.ID] = models.Identity{
		ID:         in.ID,
		Handle:     in.Handle,
		Name:       in.Name,
		TrustScore: score,
		FirstSeen:  s.now().UTC(),
	}
	s.byHandle[in.Handle] = in.ID
	return in.ID, nil
}

func (s *MemoryStore) UpdateIdentity(ctx context.Context, id int64, up models.IdentityUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.identities[id]
	if !ok {
		return common.ErrorNotFound
	}
	i.Name = up.Name
	if up.TrustScore != nil && *up.TrustScore > i.TrustScore {
		i.TrustScore = *up.TrustScore
	}
	s.identities[id] = i
	return nil
}

func (s *MemoryStore) IncrementTrust(ctx context.Context, id int64, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("%w: delta must be positive", common.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.identities[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	i.TrustScore += delta
	s.identities[id] = i
	return i.TrustScore, nil
}

func (s *MemoryStore) ListVotesByVoter(ctx context.Context, voterHandle string) ([]models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Vote
	for _, v := range s.votes {
		if v.VoterHandle == voterHandle {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryStore) InsertVote(ctx context.Context, v models.Vote) error {
	if !v.Value.Valid() {
		return fmt.Errorf("%w: invalid vote value %q", common.ErrorValidation, v.Value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[v.CandidateID]; !ok {
		return fmt.Errorf("candidate %d: %w", v.CandidateID, common.ErrorNotFound)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = s.now().UTC()
	}
	s.votes = append(s.votes, v)
	return nil
}
