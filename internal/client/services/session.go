package services

import "context"

// SessionStore is the per-device persisted session. It is owned by the
// device and never merged from the remote store.
type SessionStore interface {
	Handle(ctx context.Context) (string, error)
	SetHandle(ctx context.Context, handle string) error
	VoteCount(ctx context.Context) (int, error)
	SetVoteCount(ctx context.Context, n int) error
	Clear(ctx context.Context) error
}
