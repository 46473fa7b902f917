// Package cache stores rendered artifacts and serialized diagrams by key.
//
// Three backends share the [Cache] interface: [FileCache] for the
// command-line tool, [RedisCache] for the HTTP server, and [NullCache] when
// caching is disabled. Keys are produced by a [Keyer] so that every layer
// agrees on what identifies an entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. The boolean is false on a miss,
	// including expired entries; err is reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key types reported to cache hooks.
const (
	KeyTypeDiagram  = "diagram"
	KeyTypeArtifact = "artifact"
)
