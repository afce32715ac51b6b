package services

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/store"
)

// Snapshot is a copy of the mirrored remote state.
type Snapshot struct {
	Identities []models.Identity
	VotedIDs   map[int64]struct{}
}

// SyncEngine mirrors the identity list and the active user's votes.
//
// Refresh is stale-but-available: a failed or empty identity fetch keeps the
// current list, a failed vote fetch keeps the current voted set. Concurrent
// refreshes are not sequenced; the last one to complete wins.
type SyncEngine struct {
	store   store.Store
	session SessionStore
	logger  logging.Logger

	mu         sync.RWMutex
	identities []models.Identity
	voted      map[int64]struct{}
}

// NewSyncEngine starts from seed until the first successful refresh.
func NewSyncEngine(st store.Store, session SessionStore, logger logging.Logger, seed []models.Identity) *SyncEngine {
	return &SyncEngine{
		store:      st,
		session:    session,
		logger:     logger.With("module", "sync"),
		identities: append([]models.Identity(nil), seed...),
		voted:      make(map[int64]struct{}),
	}
}

// Refresh pulls the identity list and, when a handle is known, the handle's
// votes. An empty handle falls back to the session. It never fails.
func (e *SyncEngine) Refresh(ctx context.Context, handle string) Snapshot {
	if handle == "" && e.session != nil {
		h, err := e.session.Handle(ctx)
		if err != nil {
			e.logger.Warn(ctx, "session read failed", "error", err)
		}
		handle = h
	}

	list, err := e.store.ListIdentities(ctx)
	if err != nil {
		e.logger.Warn(ctx, "identity fetch failed, keeping local data", "error", err)
	} else if len(list) > 0 {
		clean := make([]models.Identity, 0, len(list))
		for _, i := range list {
			clean = append(clean, i.Sanitize())
		}
		e.mu.Lock()
		e.identities = clean
		e.mu.Unlock()
	}

	if handle != "" {
		votes, err := e.store.ListVotesByVoter(ctx, handle)
		if err != nil {
			e.logger.Warn(ctx, "vote fetch failed, keeping local data", "handle", handle, "error", err)
		} else {
			voted := make(map[int64]struct{}, len(votes))
			for _, v := range votes {
				voted[v.CandidateID] = struct{}{}
			}
			e.mu.Lock()
			e.voted = voted
			e.mu.Unlock()
		}
	}

	return e.Snapshot()
}

func (e *SyncEngine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	voted := make(map[int64]struct{}, len(e.voted))
	for id := range e.voted {
		voted[id] = struct{}{}
	}
	return Snapshot{
		Identities: append([]models.Identity(nil), e.identities...),
		VotedIDs:   voted,
	}
}

// Identities returns the list ordered by trust score, highest first.
func (e *SyncEngine) Identities() []models.Identity {
	e.mu.RLock()
	out := append([]models.Identity(nil), e.identities...)
	e.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].TrustScore > out[j].TrustScore })
	return out
}

// FindByHandle looks the handle up in the local list.
func (e *SyncEngine) FindByHandle(handle string) (models.Identity, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, i := range e.identities {
		if models.SameHandle(i.Handle, handle) {
			return i, true
		}
	}
	return models.Identity{}, false
}

func (e *SyncEngine) HasVoted(id int64) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.voted[id]
	return ok
}

// MarkVoted records a local judgment ahead of the ledger.
func (e *SyncEngine) MarkVoted(id int64) {
	e.mu.Lock()
	e.voted[id] = struct{}{}
	e.mu.Unlock()
}

// BumpTrust applies an optimistic trust increment to the local list.
func (e *SyncEngine) BumpTrust(id int64, delta int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for n := range e.identities {
		if e.identities[n].ID == id {
			e.identities[n].TrustScore += delta
			return
		}
	}
}

// ResetVotes forgets the voted set. Used on logout and on a handle switch.
func (e *SyncEngine) ResetVotes() {
	e.mu.Lock()
	e.voted = make(map[int64]struct{})
	e.mu.Unlock()
}
