package services

import (
	"testing"

	"github.com/dmitrijs2005/trustvote/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		want models.VoteValue
		ok   bool
	}{
		{"far right", 200, models.VotePositive, true},
		{"just past right", 150.5, models.VotePositive, true},
		{"at threshold", 150, "", false},
		{"neutral", 0, "", false},
		{"at negative threshold", -150, "", false},
		{"far left", -151, models.VoteNegative, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifySwipe(tt.dx, DefaultSwipeThreshold)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
