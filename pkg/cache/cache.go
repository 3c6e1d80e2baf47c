// Package cache provides pluggable result caching for the linearization
// pipeline.
//
// Three backends are available: a file cache for CLI usage, a Redis cache
// for shared deployments, and a null cache that disables caching. Cache
// keys are derived from content hashes of the input document plus the
// options that shaped the result, so a changed document or a changed filter
// never serves stale output.
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached result kinds.
const (
	// TTLOrders is the lifetime of cached order enumerations.
	TTLOrders = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached serialized artifacts
	// (plain text, JSON trees, DOT graphs).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit; a miss
	// is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
