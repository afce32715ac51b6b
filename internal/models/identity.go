package models

import (
	"time"
)

const (
	// Platform is the only social network identities are linked to.
	Platform = "Twitter"

	// DefaultName and DefaultHandle are used when a store row lacks them.
	DefaultName   = "Member"
	DefaultHandle = "@member"
)

// Identity is a registered participant that can vote and be voted on.
// Handle is the natural key; ID is the storage key and is never reassigned.
type Identity struct {
	ID         int64     `json:"id"`
	Handle     string    `json:"handle"`
	Name       string    `json:"name"`
	TrustScore int64     `json:"trust_score"`
	FirstSeen  time.Time `json:"first_seen"`
}

// NewProvisionalIdentity builds the optimistic identity used before the store
// confirms creation. Its id is derived from now so the store insert can reuse it.
func NewProvisionalIdentity(handle string, now time.Time) Identity {
	return Identity{
		ID:         now.UnixMilli(),
		Handle:     handle,
		Name:       BareHandle(handle),
		TrustScore: 0,
		FirstSeen:  now.UTC(),
	}
}

// ProfileImageURL is the avatar proxy URL for the handle.
func (i Identity) ProfileImageURL() string {
	return "https://unavatar.io/twitter/" + BareHandle(i.Handle)
}

// ProfileURL links to the identity's profile on the platform.
func (i Identity) ProfileURL() string {
	return "https://x.com/" + BareHandle(i.Handle)
}

// Sanitize applies the defaults used when reading rows from the store.
func (i Identity) Sanitize() Identity {
	if i.Name == "" {
		i.Name = DefaultName
	}
	if i.Handle == "" {
		i.Handle = DefaultHandle
	}
	if i.TrustScore < 0 {
		i.TrustScore = 0
	}
	return i
}
