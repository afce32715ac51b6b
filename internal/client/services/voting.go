package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/logging"
	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/dmitrijs2005/trustvote/internal/store"
)

// DefaultVoteQuota is the lifetime number of judgments per device session.
const DefaultVoteQuota = 10

// QueueState is the voting controller's state.
type QueueState string

const (
	StateHasCandidate   QueueState = "HAS_CANDIDATE"
	StateQueueEmpty     QueueState = "QUEUE_EMPTY"
	StateQuotaExhausted QueueState = "QUOTA_EXHAUSTED"
)

// Outcome describes the controller after a successful judgment.
type Outcome struct {
	State     QueueState
	VoteCount int
	Remaining int
	// Finished is set when the judgment ended the voting session.
	Finished bool
}

// VotingService is the voting queue controller.
type VotingService struct {
	store      store.Store
	session    SessionStore
	engine     *SyncEngine
	dispatcher *Dispatcher
	views      *ViewState
	quota      int
	logger     logging.Logger
	shuffle    func([]models.Identity)

	mu     sync.Mutex
	handle string
	count  int
	queue  []models.Identity
}

func NewVotingService(
	st store.Store,
	session SessionStore,
	engine *SyncEngine,
	dispatcher *Dispatcher,
	views *ViewState,
	quota int,
	logger logging.Logger,
) *VotingService {
	if quota <= 0 {
		quota = DefaultVoteQuota
	}
	return &VotingService{
		store:      st,
		session:    session,
		engine:     engine,
		dispatcher: dispatcher,
		views:      views,
		quota:      quota,
		logger:     logger.With("module", "voting"),
		shuffle: func(q []models.Identity) {
			rand.Shuffle(len(q), func(i, j int) { q[i], q[j] = q[j], q[i] })
		},
	}
}

// Start loads the session, builds a fresh queue and switches to the voting
// view.
func (s *VotingService) Start(ctx context.Context) (QueueState, error) {
	if _, err := s.BuildQueue(ctx); err != nil {
		return "", err
	}
	s.views.Set(ViewVoting)
	return s.State(), nil
}

// BuildQueue derives the judgeable queue: every known identity except the
// active user and those already judged, shuffled once.
func (s *VotingService) BuildQueue(ctx context.Context) ([]models.Identity, error) {
	handle, err := s.session.Handle(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if handle == "" {
		return nil, ErrNotAuthenticated
	}
	count, err := s.session.VoteCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var queue []models.Identity
	for _, i := range s.engine.Identities() {
		if models.SameHandle(i.Handle, handle) || s.engine.HasVoted(i.ID) {
			continue
		}
		queue = append(queue, i)
	}
	s.shuffle(queue)

	s.mu.Lock()
	s.handle = handle
	s.count = count
	s.queue = queue
	s.mu.Unlock()

	return append([]models.Identity(nil), queue...), nil
}

// Current returns the head of the queue.
func (s *VotingService) Current() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return models.Identity{}, false
	}
	return s.queue[0], true
}

func (s *VotingService) State() QueueState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *VotingService) stateLocked() QueueState {
	switch {
	case s.count >= s.quota:
		return StateQuotaExhausted
	case len(s.queue) == 0:
		return StateQueueEmpty
	default:
		return StateHasCandidate
	}
}

// VoteCount returns the votes cast and the votes left.
func (s *VotingService) VoteCount() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, max(s.quota-s.count, 0)
}

// Judge records a judgment on the head of the queue. Local state moves
// first; the trust increment and the ledger insert are dispatched and never
// awaited. When the quota is reached or the queue runs out the view goes
// back to the dashboard and a refresh follows the writes.
func (s *VotingService) Judge(ctx context.Context, candidateID int64, value models.VoteValue) (Outcome, error) {
	if !value.Valid() {
		return Outcome{}, fmt.Errorf("%w: unknown vote value %q", common.ErrorValidation, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.handle == "":
		return Outcome{}, ErrNotAuthenticated
	case s.count >= s.quota:
		return Outcome{}, ErrQuotaExceeded
	case len(s.queue) == 0:
		return Outcome{}, ErrQueueEmpty
	case s.queue[0].ID != candidateID:
		return Outcome{}, ErrStaleCandidate
	}

	next := s.count + 1
	if err := s.session.SetVoteCount(ctx, next); err != nil {
		return Outcome{}, fmt.Errorf("save vote count: %w", err)
	}

	handle := s.handle
	vote := models.Vote{VoterHandle: handle, CandidateID: candidateID, Value: value}
	finished := next >= s.quota || len(s.queue) <= 1

	cmd := Command{
		Name: "judge",
		Local: func() {
			s.engine.MarkVoted(candidateID)
			if value == models.VotePositive {
				s.engine.BumpTrust(candidateID, 1)
			}
			s.count = next
			s.queue = s.queue[1:]
		},
		Remote: func(ctx context.Context) error {
			var firstErr error
			if value == models.VotePositive {
				if _, err := s.store.IncrementTrust(ctx, candidateID, 1); err != nil {
					firstErr = fmt.Errorf("increment trust: %w", err)
				}
			}
			if err := s.store.InsertVote(ctx, vote); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("record vote: %w", err)
			}
			return firstErr
		},
	}
	if finished {
		cmd.Reconcile = func(ctx context.Context, _ error) {
			s.engine.Refresh(ctx, handle)
		}
	}
	s.dispatcher.Dispatch(ctx, cmd)

	if finished {
		s.views.Set(ViewDashboard)
	}

	return Outcome{
		State:     s.stateLocked(),
		VoteCount: s.count,
		Remaining: max(s.quota-s.count, 0),
		Finished:  finished,
	}, nil
}

// Reset forgets the in-memory queue and counters. Used on logout.
func (s *VotingService) Reset() {
	s.mu.Lock()
	s.handle = ""
	s.count = 0
	s.queue = nil
	s.mu.Unlock()
}
