// Package metadata is the client's local key/value store. It backs the
// session (handle, vote count, device fingerprint) and the enrichment cache.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns a nil value and no
// error for a missing key. List and Clear restrict themselves to keys with
// the given prefix; an empty prefix matches every key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Clear(ctx context.Context, prefix string) error
}
