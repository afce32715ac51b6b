package votes

import "github.com/dmitrijs2005/trustvote/internal/store"

// Repository is the server-side view of the vote ledger.
type Repository interface {
	store.VoteLedger
}
