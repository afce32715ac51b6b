package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/dmitrijs2005/trustvote/internal/client/enrichment"
	"github.com/dmitrijs2005/trustvote/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustvote/internal/client/session"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/store"
)

var errBoom = errors.New("boom")

// flakyStore wraps a MemoryStore with switchable failures.
type flakyStore struct {
	*store.MemoryStore

	mu         sync.Mutex
	failList   bool
	failVotes  bool
	failInsert bool
	insertErrs []error
	inserts    []models.IdentityInsert
	increments int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: store.NewMemoryStore(models.SeedIdentities()...)}
}

func (f *flakyStore) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	f.mu.Lock()
	fail := f.failList
	f.mu.Unlock()
	if fail {
		return nil, errBoom
	}
	return f.MemoryStore.ListIdentities(ctx)
}

func (f *flakyStore) ListVotesByVoter(ctx context.Context, handle string) ([]models.Vote, error) {
	f.mu.Lock()
	fail := f.failVotes
	f.mu.Unlock()
	if fail {
		return nil, errBoom
	}
	return f.MemoryStore.ListVotesByVoter(ctx, handle)
}

func (f *flakyStore) InsertIdentity(ctx context.Context, in models.IdentityInsert) (int64, error) {
	f.mu.Lock()
	f.inserts = append(f.inserts, in)
	if f.failInsert {
		f.mu.Unlock()
		return 0, errBoom
	}
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		f.mu.Unlock()
		return 0, err
	}
	f.mu.Unlock()
	return f.MemoryStore.InsertIdentity(ctx, in)
}

func (f *flakyStore) IncrementTrust(ctx context.Context, id int64, delta int64) (int64, error) {
	f.mu.Lock()
	f.increments++
	f.mu.Unlock()
	return f.MemoryStore.IncrementTrust(ctx, id, delta)
}

type stubEnricher struct {
	name     string
	enriched bool
}

func (s stubEnricher) ParseProfile(ctx context.Context, profileURL string) (enrichment.Profile, bool) {
	return enrichment.Profile{Name: s.name, Handle: "@x"}, s.enriched
}

type testEnv struct {
	store      *flakyStore
	session    *session.Store
	views      *ViewState
	dispatcher *Dispatcher
	engine     *SyncEngine
	identity   *IdentityService
	voting     *VotingService
}

func newTestEnv(t *testing.T, enricher Enricher) *testEnv {
	t.Helper()

	st := newFlakyStore()
	sess := session.NewStore(metadata.NewMemoryRepository())
	views := NewViewState()
	d := NewDispatcher(logging.Nop{}, 64)
	t.Cleanup(d.Close)

	engine := NewSyncEngine(st, sess, logging.Nop{}, models.SeedIdentities())
	ids := NewIdentityService(st, sess, engine, d, views, enricher, "node-test", logging.Nop{})
	voting := NewVotingService(st, sess, engine, d, views, DefaultVoteQuota, logging.Nop{})
	voting.shuffle = byID

	return &testEnv{store: st, session: sess, views: views, dispatcher: d, engine: engine, identity: ids, voting: voting}
}

// byID orders the queue deterministically.
func byID(q []models.Identity) {
	sort.Slice(q, func(i, j int) bool { return q[i].ID < q[j].ID })
}

// emptyStore answers every list with no rows.
type emptyStore struct {
	*flakyStore
}

func (emptyStore) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	return nil, nil
}

func nopLogger() logging.Logger { return logging.Nop{} }
