package identities

import "github.com/dmitrijs2005/trustvote/internal/store"

// Repository is the server-side view of the identity store.
type Repository interface {
	store.IdentityStore
}
