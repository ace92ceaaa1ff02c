// Package cache provides response caching for API clients.
//
// The exporter never persists data between process runs: the only backends
// are an in-memory map scoped to one invocation and a no-op null cache for
// disabling caching entirely. Keys are SHA-256 hashes so arbitrary URLs can
// be used as identifiers.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for response caching backends.
// Implementations must be safe for use from a single goroutine; the
// exporter performs no concurrent fetches.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
