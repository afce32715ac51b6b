package services

import "sync"

// View is the screen the client is showing.
type View string

const (
	ViewLoading     View = "LOADING"
	ViewLanding     View = "LANDING"
	ViewLogin       View = "LOGIN"
	ViewDashboard   View = "DASHBOARD"
	ViewVoting      View = "VOTING"
	ViewLeaderboard View = "LEADERBOARD"
)

// ViewState is the current view, safe for concurrent use.
type ViewState struct {
	mu   sync.RWMutex
	view View
}

func NewViewState() *ViewState {
	return &ViewState{view: ViewLoading}
}

func (v *ViewState) Current() View {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.view
}

func (v *ViewState) Set(view View) {
	v.mu.Lock()
	v.view = view
	v.mu.Unlock()
}

// Settle leaves LOADING once the first refresh finished: DASHBOARD when a
// session handle exists, LANDING otherwise. Any other view is kept.
func (v *ViewState) Settle(hasHandle bool) View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.view == ViewLoading {
		if hasHandle {
			v.view = ViewDashboard
		} else {
			v.view = ViewLanding
		}
	}
	return v.view
}
