package common

import (
	"math/rand/v2"
	"time"
)

// FallbackIdentityID returns a randomized numeric id used when the id derived
// from a provisional identity collides with an existing row.
func FallbackIdentityID(now time.Time) int64 {
	return now.UnixMilli() + rand.Int64N(1000)
}
