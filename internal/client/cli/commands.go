package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/trustvote/internal/client/enrichment"
	"github.com/dmitrijs2005/trustvote/internal/client/passport"
	"github.com/dmitrijs2005/trustvote/internal/client/services"
	"github.com/dmitrijs2005/trustvote/internal/common"
	"github.com/dmitrijs2005/trustvote/internal/models"
)

var errNotLoggedIn = errors.New("not logged in")

// home returns to the dashboard, or to the landing view when logged out.
func (a *App) home() {
	if a.isLoggedIn() {
		a.views.Set(services.ViewDashboard)
		return
	}
	a.views.Set(services.ViewLanding)
}

// Login establishes a handle given inline, or asks for one. Profile links
// are reduced to their last path segment.
func (a *App) Login(ctx context.Context, args []string) error {
	raw := strings.TrimSpace(strings.Join(args, " "))
	if raw == "" {
		a.views.Set(services.ViewLogin)
		var err error
		raw, err = GetSimpleText(a.reader, "Enter your X handle or profile link", a.out)
		if err != nil {
			a.home()
			return err
		}
	}
	if strings.Contains(raw, "/") {
		raw = enrichment.FallbackProfile(raw).Handle
	}

	ident, err := a.identity.Establish(ctx, raw)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			a.printf("Invalid handle: %q\n", raw)
		} else {
			a.printf("Login failed: %v\n", err)
		}
		a.home()
		return err
	}

	a.voting.Reset()
	a.printf("Logged in as %s (%s), trust %d\n", ident.Name, ident.Handle, ident.TrustScore)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not logged in\n")
		return errNotLoggedIn
	}
	if interactive() {
		ok, err := Confirm(a.reader, "Log out and reset the vote counter?", a.out)
		if err != nil || !ok {
			return err
		}
	}
	if err := a.identity.Logout(ctx); err != nil {
		a.printf("Logout failed: %v\n", err)
		return err
	}
	a.voting.Reset()
	a.printf("Logged out\n")
	return nil
}

// Dashboard shows the active identity and the vote budget.
func (a *App) Dashboard(ctx context.Context) error {
	ident, ok := a.identity.Active(ctx)
	if !ok {
		a.printf("Please login first\n")
		return errNotLoggedIn
	}
	a.views.Set(services.ViewDashboard)

	used := a.votesUsed(ctx)
	rank := 0
	for _, e := range services.Leaderboard(a.engine.Identities(), ident.Handle) {
		if e.IsSelf {
			rank = e.Rank
			break
		}
	}

	a.printf("%s (%s)\n", ident.Name, ident.Handle)
	a.printf("  trust:    %d\n", ident.TrustScore)
	if rank > 0 {
		a.printf("  rank:     #%d of %d\n", rank, len(a.engine.Identities()))
	}
	a.printf("  votes:    %d/%d\n", used, a.quota())
	a.printf("  profile:  %s\n", ident.ProfileURL())
	return nil
}

// Vote walks the queue. Each candidate takes y, n, "swipe <dx>" or q.
func (a *App) Vote(ctx context.Context) error {
	if _, err := a.voting.Start(ctx); err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			a.printf("Please login first\n")
		} else {
			a.printf("Cannot start voting: %v\n", err)
		}
		return err
	}

	hint := "[y] know  [n] don't know  [swipe <dx>]  [q] back"
	if !interactive() {
		hint = "y/n/swipe <dx>/q"
	}

	for {
		switch a.voting.State() {
		case services.StateQuotaExhausted:
			a.printf("Vote quota reached (%d/%d)\n", a.votesUsed(ctx), a.quota())
			a.views.Set(services.ViewDashboard)
			return nil
		case services.StateQueueEmpty:
			a.printf("Nobody left to judge\n")
			a.views.Set(services.ViewDashboard)
			return nil
		}

		cand, ok := a.voting.Current()
		if !ok {
			return nil
		}
		a.printCandidate(ctx, cand)

		line, err := GetSimpleText(a.reader, hint, a.out)
		if err != nil {
			a.views.Set(services.ViewDashboard)
			return nil
		}

		value, quit, err := parseJudgment(line, a.config.SwipeThreshold)
		if quit {
			a.views.Set(services.ViewDashboard)
			return nil
		}
		if err != nil {
			a.printf("%v\n", err)
			continue
		}

		out, err := a.voting.Judge(ctx, cand.ID, value)
		if err != nil {
			a.printf("Vote not recorded: %v\n", err)
			continue
		}
		a.printf("Recorded. %d/%d votes used\n", out.VoteCount, a.quota())
		if out.Finished {
			a.printf("Voting session finished\n")
			return nil
		}
	}
}

var errSnapBack = errors.New("swipe too short, card snapped back")

// parseJudgment maps a line of input to a vote value. quit is set for q.
func parseJudgment(line string, threshold float64) (value models.VoteValue, quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return "", false, fmt.Errorf("%w: empty answer", common.ErrorValidation)
	}

	switch fields[0] {
	case "q", "quit", "back":
		return "", true, nil
	case "swipe":
		if len(fields) != 2 {
			return "", false, fmt.Errorf("%w: usage: swipe <dx>", common.ErrorValidation)
		}
		dx, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return "", false, fmt.Errorf("%w: bad swipe distance %q", common.ErrorValidation, fields[1])
		}
		v, ok := services.ClassifySwipe(dx, threshold)
		if !ok {
			return "", false, errSnapBack
		}
		return v, false, nil
	}

	v, err := models.ParseVoteValue(fields[0])
	return v, false, err
}

func (a *App) printCandidate(ctx context.Context, c models.Identity) {
	a.printf("\n%s (%s)  trust %d\n", c.Name, c.Handle, c.TrustScore)
	a.printf("  %s\n", c.ProfileURL())
	a.printf("  %s\n", a.gateway.Insight(ctx, c.Name))
}

func (a *App) Leaderboard(ctx context.Context) error {
	a.views.Set(services.ViewLeaderboard)
	defer a.home()

	for _, e := range services.Leaderboard(a.engine.Identities(), a.handle(ctx)) {
		marker := ""
		if e.IsSelf {
			marker = "  <- you"
		}
		a.printf("%3d. %-24s %-20s %6d%s\n", e.Rank, e.Identity.Name, e.Identity.Handle, e.Identity.TrustScore, marker)
	}
	return nil
}

// Passport renders the active identity's card and, when possible, uploads it.
func (a *App) Passport(ctx context.Context) error {
	ident, ok := a.identity.Active(ctx)
	if !ok {
		a.printf("Please login first\n")
		return errNotLoggedIn
	}

	res, err := a.passports.Create(ctx, ident)
	if err != nil {
		a.printf("Passport failed: %v\n", err)
		return err
	}
	a.printf("Passport saved to %s (%s)\n", res.Path, res.Format)
	a.printf("  %s\n", res.Analysis)
	if res.DownloadURL != "" {
		a.printf("  download: %s\n", res.DownloadURL)
	}
	return nil
}

func (a *App) Share(ctx context.Context) error {
	ident, ok := a.identity.Active(ctx)
	if !ok {
		a.printf("Please login first\n")
		return errNotLoggedIn
	}
	a.printf("%s\n", passport.ShareIntentURL(ident.Name, ident.TrustScore, a.config.ShareBaseURL))
	return nil
}

// Refresh reloads the registry. While offline it shows the cached snapshot
// without calling the store.
func (a *App) Refresh(ctx context.Context) error {
	if a.Mode() == ModeOffline {
		snap := a.engine.Snapshot()
		a.printf("Offline, showing cached data: %d identities, %d judged\n", len(snap.Identities), len(snap.VotedIDs))
		return nil
	}
	snap := a.engine.Refresh(ctx, a.handle(ctx))
	a.printf("%d identities, %d judged\n", len(snap.Identities), len(snap.VotedIDs))
	return nil
}

// Forget drops cached names and insights so they are generated again.
func (a *App) Forget(ctx context.Context) error {
	n, err := a.gateway.ClearCache(ctx)
	if err != nil {
		a.printf("Cache clear failed: %v\n", err)
		return err
	}
	a.printf("Forgot %d cached responses\n", n)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	handle := a.handle(ctx)
	if handle == "" {
		handle = "-"
	}
	a.printf("mode:    %s\n", a.Mode())
	a.printf("view:    %s\n", a.views.Current())
	a.printf("handle:  %s\n", handle)
	a.printf("votes:   %d/%d\n", a.votesUsed(ctx), a.quota())
	a.printf("device:  %s\n", a.device)
	return nil
}
