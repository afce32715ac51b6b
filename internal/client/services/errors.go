package services

import "errors"

// Judge precondition errors. A failed precondition leaves every piece of
// state untouched.
var (
	ErrNotAuthenticated = errors.New("no active identity")
	ErrQuotaExceeded    = errors.New("vote quota exhausted")
	ErrQueueEmpty       = errors.New("no candidates left to judge")
	ErrStaleCandidate   = errors.New("candidate is not at the head of the queue")
)
