package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tubewatch/tubewatch/internal/infrastructure/metrics"
)

type backendState int

const (
	stateConnected backendState = iota
	stateDegraded
	stateReconnecting
)

func (s backendState) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateDegraded:
		return "degraded"
	case stateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// FailoverStore serves from a shared primary backend and degrades to a
// process-local fallback when the primary misbehaves. After MaxFailures
// consecutive primary errors the primary is abandoned for Cooldown, then
// probed once; a successful probe reconnects, a failed one starts a new
// cooldown window. Backend errors never reach the caller: a broken cache
// degrades to a miss, not an application error.
type FailoverStore struct {
	primary  Store
	fallback Store

	maxFailures int
	cooldown    time.Duration
	now         func() time.Time

	mu            sync.Mutex
	state         backendState
	failures      int
	degradedSince time.Time
}

// FailoverOptions configures a FailoverStore.
type FailoverOptions struct {
	MaxFailures int
	Cooldown    time.Duration
}

func NewFailoverStore(primary, fallback Store, opts FailoverOptions) *FailoverStore {
	maxFailures := opts.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	cooldown := opts.Cooldown
	if cooldown <= 0 {
		cooldown = 3 * time.Minute
	}
	return &FailoverStore{
		primary:     primary,
		fallback:    fallback,
		maxFailures: maxFailures,
		cooldown:    cooldown,
		now:         time.Now,
	}
}

func (f *FailoverStore) Get(ctx context.Context, key string) (string, error) {
	if f.tryPrimary() {
		value, err := f.primary.Get(ctx, key)
		switch {
		case err == nil:
			f.recordSuccess()
			observe(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheBackendRedis)
			return value, nil
		case errors.Is(err, ErrCacheMiss):
			// A miss still proves the backend is reachable.
			f.recordSuccess()
			observe(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheBackendRedis)
			return "", ErrCacheMiss
		default:
			f.recordFailure(err)
			observe(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheBackendRedis)
		}
	}

	value, err := f.fallback.Get(ctx, key)
	if err != nil {
		observe(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheBackendMemory)
		return "", ErrCacheMiss
	}
	observe(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheBackendMemory)
	return value, nil
}

func (f *FailoverStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.tryPrimary() {
		if err := f.primary.Set(ctx, key, value, ttl); err != nil {
			f.recordFailure(err)
			observe(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheBackendRedis)
		} else {
			f.recordSuccess()
			observe(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheBackendRedis)
			return nil
		}
	}

	if err := f.fallback.Set(ctx, key, value, ttl); err != nil {
		slog.Warn("fallback cache set failed", "key", key, "error", err)
		return nil
	}
	observe(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheBackendMemory)
	return nil
}

func (f *FailoverStore) Delete(ctx context.Context, key string) error {
	if f.tryPrimary() {
		if err := f.primary.Delete(ctx, key); err != nil {
			f.recordFailure(err)
			observe(metrics.CacheOpDelete, metrics.CacheStatusError, metrics.CacheBackendRedis)
		} else {
			f.recordSuccess()
		}
	}

	// Always delete locally so a stale fallback entry cannot resurface.
	if err := f.fallback.Delete(ctx, key); err != nil {
		slog.Warn("fallback cache delete failed", "key", key, "error", err)
	}
	return nil
}

// tryPrimary reports whether the next operation should go to the primary,
// driving the state machine transitions on the way.
func (f *FailoverStore) tryPrimary() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case stateConnected:
		return true
	case stateDegraded:
		if f.now().Sub(f.degradedSince) >= f.cooldown {
			f.setState(stateReconnecting)
			return true
		}
		return false
	case stateReconnecting:
		// A probe is already in flight; don't pile on.
		return false
	default:
		return false
	}
}

func (f *FailoverStore) recordSuccess() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != stateConnected {
		slog.Info("shared cache backend recovered")
	}
	f.failures = 0
	f.setState(stateConnected)
}

func (f *FailoverStore) recordFailure(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures++
	slog.Warn("shared cache backend error",
		"error", err,
		"consecutive_failures", f.failures,
	)

	if f.state == stateReconnecting || f.failures >= f.maxFailures {
		f.degradedSince = f.now()
		f.setState(stateDegraded)
		slog.Warn("shared cache backend degraded, serving from local fallback",
			"cooldown", f.cooldown,
		)
	}
}

// setState must be called with the mutex held.
func (f *FailoverStore) setState(next backendState) {
	f.state = next
	metrics.CacheBackendState.Set(float64(next))
}

func observe(op, status, backend string) {
	metrics.CacheOperationsTotal.WithLabelValues(op, status, backend).Inc()
}
