// Package cache stores rendered cards so repeated requests skip drawing.
//
// A [Cache] is a plain byte store with per-entry expiry. Keys come from a
// [Keyer], which hashes everything that affects the rendered bytes: the style
// descriptor's fingerprint, the content hashes of its font and background, the
// title and the output format. Changing any asset or style field therefore
// produces a new key, and stale entries simply age out.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON entries under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: shared cache with a TTL index
package cache

import (
	"context"
	"time"
)

// TTLCard is how long a rendered card stays cached.
const TTLCard = 7 * 24 * time.Hour

// Cache is a byte store keyed by string. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// CardKey returns the key of a rendered card.
	CardKey(opts CardKeyOpts) string
}

// CardKeyOpts is everything that determines a card's encoded bytes.
type CardKeyOpts struct {
	Fingerprint    string // style descriptor fingerprint
	FontHash       string
	BackgroundHash string
	Title          string
	Format         string
}

// DefaultKeyer hashes key components into "card:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CardKey implements Keyer.
func (DefaultKeyer) CardKey(opts CardKeyOpts) string {
	return hashKey("card", opts.Fingerprint, opts.FontHash, opts.BackgroundHash, opts.Title, opts.Format)
}

var _ Keyer = DefaultKeyer{}
