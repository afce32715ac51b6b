package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/server/repositories/repomanager"
)

// StoreService is the server-side Identity Store and Vote Ledger. It
// normalizes and validates payloads before they reach the repositories.
type StoreService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewStoreService(db *sql.DB, repomanager repomanager.RepositoryManager, logger logging.Logger) *StoreService {
	return &StoreService{
		db:          db,
		repomanager: repomanager,
		logger:      logger.With("module", "store_service"),
	}
}

func (s *StoreService) ListIdentities(ctx context.Context) ([]models.Identity, error) {
	return s.repomanager.Identities(s.db).ListIdentities(ctx)
}

func (s *StoreService) FindByHandle(ctx context.Context, handle string) (*models.Identity, error) {
	h, err := models.NormalizeHandle(handle)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Identities(s.db).FindByHandle(ctx, h)
}

func (s *StoreService) InsertIdentity(ctx context.Context, in models.IdentityInsert) (int64, error) {
	h, err := models.NormalizeHandle(in.Handle)
	if err != nil {
		return 0, err
	}
	if in.ID <= 0 {
		return 0, fmt.Errorf("%w: id must be positive", common.ErrorValidation)
	}
	in.Handle = h
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = models.BareHandle(h)
	}

	id, err := s.repomanager.Identities(s.db).InsertIdentity(ctx, in)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "identity created", "id", id, "handle", in.Handle, "device", in.Fingerprint)
	return id, nil
}

func (s *StoreService) UpdateIdentity(ctx context.Context, id int64, up models.IdentityUpdate) error {
	up.Name = strings.TrimSpace(up.Name)
	if up.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if up.TrustScore != nil && *up.TrustScore < 0 {
		return fmt.Errorf("%w: trust score must be non-negative", common.ErrorValidation)
	}
	return s.repomanager.Identities(s.db).UpdateIdentity(ctx, id, up)
}

func (s *StoreService) IncrementTrust(ctx context.Context, id int64, delta int64) (int64, error) {
	score, err := s.repomanager.Identities(s.db).IncrementTrust(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	s.logger.Debug(ctx, "trust incremented", "id", id, "score", score)
	return score, nil
}

func (s *StoreService) ListVotesByVoter(ctx context.Context, voterHandle string) ([]models.Vote, error) {
	h, err := models.NormalizeHandle(voterHandle)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Votes(s.db).ListVotesByVoter(ctx, h)
}

func (s *StoreService) InsertVote(ctx context.Context, v models.Vote) error {
	h, err := models.NormalizeHandle(v.VoterHandle)
	if err != nil {
		return err
	}
	if !v.Value.Valid() {
		return fmt.Errorf("%w: invalid vote value %q", common.ErrorValidation, v.Value)
	}
	v.VoterHandle = h
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	return s.repomanager.Votes(s.db).InsertVote(ctx, v)
}
