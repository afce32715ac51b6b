package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/common"
)

// VoteValue is the binary judgment cast on a candidate. Only VotePositive and
// VoteNegative are valid.
type VoteValue string

const (
	// VotePositive means "I recognize this identity"; it earns a trust point.
	VotePositive VoteValue = "KNOW"
	// VoteNegative means "skip".
	VoteNegative VoteValue = "DONT_KNOW"
)

func (v VoteValue) Valid() bool {
	return v == VotePositive || v == VoteNegative
}

// ParseVoteValue accepts the wire names as well as a few REPL aliases.
func ParseVoteValue(s string) (VoteValue, error) {
	switch s {
	case string(VotePositive), "y", "yes", "know", "+":
		return VotePositive, nil
	case string(VoteNegative), "n", "no", "skip", "-":
		return VoteNegative, nil
	}
	return "", fmt.Errorf("%w: unknown vote value %q", common.ErrorValidation, s)
}

// Vote is one ledger entry. The ledger does not enforce uniqueness of
// (VoterHandle, CandidateID).
type Vote struct {
	VoterHandle string    `json:"voter_handle"`
	CandidateID int64     `json:"candidate_id"`
	Value       VoteValue `json:"value"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
