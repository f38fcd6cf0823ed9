// Package cache stores rendered wallpapers keyed by their full input.
//
// Rendering is deterministic, so an image can be served from cache whenever
// the width, height, record, goal, format and style all match. The key
// derivation lives in [Keyer]; the storage lives behind [Cache].
//
// # Backends
//
//   - [NullCache]: caching disabled (the default)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: shared cache with a TTL index
//
// [Open] builds one of them from [Options].
//
// # Usage
//
//	c, err := cache.Open(ctx, cache.Options{Backend: cache.BackendFile, Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().ImageKey(opts)
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data, nil
//	}
package cache

import (
	"context"
	"time"
)

// TTLImage is the default lifetime of a cached image.
const TTLImage = 24 * time.Hour

// Cache is a byte store with expiring entries. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
