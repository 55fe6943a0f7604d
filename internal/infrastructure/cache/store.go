// Package cache provides the key/value store backing the response cache:
// a Redis-backed shared store, a process-local in-memory store, and a
// failover wrapper that degrades from the former to the latter.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Store is a key/value store with per-key expiry. A zero ttl means the
// entry does not expire.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
