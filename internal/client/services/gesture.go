package services

import "github.com/dmitrijs2005/trustvote/internal/models"

// DefaultSwipeThreshold is the horizontal displacement that commits a vote.
const DefaultSwipeThreshold = 150

// ClassifySwipe maps a drag displacement to a vote. Displacements within
// the threshold snap back and return false.
func ClassifySwipe(dx, threshold float64) (models.VoteValue, bool) {
	switch {
	case dx > threshold:
		return models.VotePositive, true
	case dx < -threshold:
		return models.VoteNegative, true
	default:
		return "", false
	}
}
