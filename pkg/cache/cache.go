// Package cache stores rendered artifacts keyed by a hash of everything
// that went into them: the command, its options and the bytes of every
// input file.
//
// [FileCache] keeps entries on disk across runs; [NullCache] disables
// caching. Build keys with [NewKey]:
//
//	key := cache.NewKey("heatmap").Add("cmap", "RdBu_r")
//	if err := key.AddFile("input", "ring.csv"); err != nil {
//		return err
//	}
//	data, ok, err := c.Get(ctx, key.String())
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries. A missing or expired key is
// a miss, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
