package services

import (
	"sort"

	"github.com/dmitrijs2005/trustvote/internal/models"
)

type LeaderboardEntry struct {
	Rank     int
	Identity models.Identity
	IsSelf   bool
}

// Leaderboard ranks identities by trust score, highest first, ties by id.
// Ranks start at 1.
func Leaderboard(identities []models.Identity, activeHandle string) []LeaderboardEntry {
	sorted := append([]models.Identity(nil), identities...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TrustScore != sorted[j].TrustScore {
			return sorted[i].TrustScore > sorted[j].TrustScore
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]LeaderboardEntry, 0, len(sorted))
	for n, i := range sorted {
		out = append(out, LeaderboardEntry{
			Rank:     n + 1,
			Identity: i,
			IsSelf:   activeHandle != "" && models.SameHandle(i.Handle, activeHandle),
		})
	}
	return out
}
