// Package cache stores rendered diagrams so repeated renders of the same DOT
// source skip Graphviz layout.
//
// Entries are keyed by [RenderKey], a hash of the output format and the DOT
// text, so any change to the exported record or the diagram options produces
// a new key. [FileCache] backs the CLI; [NullCache] disables caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached data and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// RenderKey returns the cache key for DOT source rendered to format.
func RenderKey(format, dot string) string {
	return "render:" + format + ":" + Hash([]byte(dot))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
