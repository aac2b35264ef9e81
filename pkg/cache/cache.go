// Package cache provides pluggable byte caches for envforge.
//
// Two concerns share this package:
//   - HTTP response caching for registry clients (short-lived, TTL-bound)
//   - The result cache: a full scan+inference result keyed by the snapshot
//     fingerprint, so an unmodified repository skips re-analysis entirely
//
// Backends:
//   - FileCache: file-based storage for CLI usage (atomic writes)
//   - RedisCache: shared storage for multi-instance deployments
//   - NullCache: disables caching
//
// The cache is advisory everywhere it is used: a miss, corruption, or read
// failure falls through to full re-computation and is never surfaced as an
// error to the pipeline.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default expiration for HTTP response cache entries.
const DefaultTTL = 24 * time.Hour

// Cache stores raw bytes by key with optional expiration.
//
// All implementations must be safe for concurrent use. Set must store the
// complete record atomically: concurrent invocations against the same
// backend must never observe a partially written entry.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; corrupted or expired entries are treated as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKey builds the cache key for a full inference result.
// The fingerprint is a stable hash over the scanned snapshot content, so
// any file change produces a different key.
func ResultKey(fingerprint string) string {
	return "result:" + fingerprint
}

// HTTPKey builds the cache key for a registry HTTP response.
// The namespace identifies the registry (e.g. "pypi:", "npm:").
func HTTPKey(namespace, key string) string {
	return "http:" + namespace + key
}
