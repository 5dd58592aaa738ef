// Package cache stores rendered artifacts between runs of the tlfs command.
//
// A report is identified by its content hash (the deterministic report ID),
// so an unchanged structure file rendered with unchanged options is served
// from the cache instead of being written again. Three backends implement
// [Cache]:
//
//   - [FileCache]: JSON entries under a local directory (the default)
//   - [RedisCache]: a shared Redis server, for build machines rendering the
//     same study in several checkouts
//   - [NullCache]: caching disabled
//
// [Keyer] builds the keys; [Instrument] reports hits and misses to the
// observability hooks.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// a miss (ok == false), not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
