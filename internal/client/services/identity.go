package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/client/enrichment"
	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/store"
)

// Enricher looks up a better display name for a profile. The bool reports
// whether the name came from the provider rather than a local fallback.
type Enricher interface {
	ParseProfile(ctx context.Context, profileURL string) (enrichment.Profile, bool)
}

// IdentityService logs users in and out.
type IdentityService struct {
	store      store.IdentityStore
	session    SessionStore
	engine     *SyncEngine
	dispatcher *Dispatcher
	views      *ViewState
	enricher   Enricher
	device     string
	logger     logging.Logger
	now        func() time.Time

	mu          sync.Mutex
	provisional *models.Identity
}

func NewIdentityService(
	st store.IdentityStore,
	session SessionStore,
	engine *SyncEngine,
	dispatcher *Dispatcher,
	views *ViewState,
	enricher Enricher,
	device string,
	logger logging.Logger,
) *IdentityService {
	return &IdentityService{
		store:      st,
		session:    session,
		engine:     engine,
		dispatcher: dispatcher,
		views:      views,
		enricher:   enricher,
		device:     device,
		logger:     logger.With("module", "identity"),
		now:        time.Now,
	}
}

// Establish makes rawHandle the active identity. A known handle is reused
// as is. An unknown one becomes a provisional identity, is stored in the
// session right away and is then upserted; a failed upsert is logged and
// the user stays logged in. New identities are enriched in the background.
func (s *IdentityService) Establish(ctx context.Context, rawHandle string) (models.Identity, error) {
	handle, err := models.NormalizeHandle(rawHandle)
	if err != nil {
		return models.Identity{}, err
	}

	ident, found := s.engine.FindByHandle(handle)
	if !found {
		ident = models.NewProvisionalIdentity(handle, s.now())
	}

	// The voted set belongs to the previous user; a failed vote fetch below
	// must not carry it over.
	if prev, err := s.session.Handle(ctx); err != nil || prev != handle {
		s.engine.ResetVotes()
	}

	if err := s.session.SetHandle(ctx, handle); err != nil {
		return models.Identity{}, fmt.Errorf("save session: %w", err)
	}
	s.setProvisional(ident, found)
	s.views.Set(ViewDashboard)

	if !found {
		id, err := s.Upsert(ctx, ident)
		if err != nil {
			s.logger.Warn(ctx, "identity upsert failed, staying logged in locally", "handle", handle, "error", err)
		} else if id != ident.ID {
			ident.ID = id
			s.setProvisional(ident, false)
		}
	}

	s.engine.Refresh(ctx, handle)

	if !found && s.enricher != nil {
		s.dispatcher.Dispatch(ctx, Command{
			Name:     "enrich-identity",
			Detached: true,
			Remote:   func(ctx context.Context) error { return s.enrich(ctx, ident) },
		})
	}

	if cur, ok := s.engine.FindByHandle(handle); ok {
		return cur, nil
	}
	return ident, nil
}

// Upsert writes ident keyed by handle and returns the stored id. The insert
// is tried first. A handle collision switches to updating the existing row,
// an id collision retries once with a randomized id.
func (s *IdentityService) Upsert(ctx context.Context, ident models.Identity) (int64, error) {
	in := models.IdentityInsert{
		ID:          ident.ID,
		Handle:      ident.Handle,
		Name:        ident.Name,
		TrustScore:  ident.TrustScore,
		Fingerprint: s.device,
	}

	id, err := s.store.InsertIdentity(ctx, in)
	if errors.Is(err, common.ErrIDTaken) {
		in.ID = common.FallbackIdentityID(s.now())
		id, err = s.store.InsertIdentity(ctx, in)
	}
	if errors.Is(err, common.ErrHandleTaken) {
		return s.updateExisting(ctx, ident)
	}
	if err != nil {
		return 0, fmt.Errorf("insert identity: %w", err)
	}
	return id, nil
}

func (s *IdentityService) updateExisting(ctx context.Context, ident models.Identity) (int64, error) {
	existing, err := s.store.FindByHandle(ctx, ident.Handle)
	if err != nil {
		return 0, fmt.Errorf("find identity: %w", err)
	}
	trust := ident.TrustScore
	if err := s.store.UpdateIdentity(ctx, existing.ID, models.IdentityUpdate{Name: ident.Name, TrustScore: &trust}); err != nil {
		return 0, fmt.Errorf("update identity: %w", err)
	}
	return existing.ID, nil
}

// enrich replaces the display name when the provider returns a different one.
func (s *IdentityService) enrich(ctx context.Context, ident models.Identity) error {
	profile, ok := s.enricher.ParseProfile(ctx, ident.ProfileURL())
	if !ok || profile.Name == "" || profile.Name == ident.Name {
		return nil
	}

	ident.Name = profile.Name
	if _, err := s.Upsert(ctx, ident); err != nil {
		return fmt.Errorf("enriched upsert: %w", err)
	}
	s.engine.Refresh(ctx, ident.Handle)
	s.logger.Info(ctx, "identity enriched", "handle", ident.Handle, "name", ident.Name)
	return nil
}

// Active returns the logged in identity: the synced row when the list has
// it, the provisional one otherwise.
func (s *IdentityService) Active(ctx context.Context) (models.Identity, bool) {
	handle, err := s.session.Handle(ctx)
	if err != nil || handle == "" {
		return models.Identity{}, false
	}
	if ident, ok := s.engine.FindByHandle(handle); ok {
		return ident, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provisional != nil && models.SameHandle(s.provisional.Handle, handle) {
		return *s.provisional, true
	}
	return models.Identity{}, false
}

// Logout clears the session handle and vote count. The enrichment cache and
// device fingerprint are kept.
func (s *IdentityService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.engine.ResetVotes()
	s.mu.Lock()
	s.provisional = nil
	s.mu.Unlock()
	s.views.Set(ViewLanding)
	return nil
}

func (s *IdentityService) setProvisional(ident models.Identity, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		s.provisional = nil
		return
	}
	s.provisional = &ident
}
