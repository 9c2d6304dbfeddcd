package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Keyed is a TTL cache over dynamic string keys, one snapshot per key. It is
// the generic fetch-cache abstraction behind every per-entity source: same
// staleness rules as Store, with the in-flight guard keyed per entry.
type Keyed[T any] struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]*Entry[T]

	flight singleflight.Group
}

func NewKeyed[T any](ttl time.Duration) *Keyed[T] {
	return &Keyed[T]{ttl: ttl, entries: make(map[string]*Entry[T])}
}

// Get returns the payload for key plus freshness and existence flags.
func (k *Keyed[T]) Get(key string) (payload T, fresh, exists bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	e, ok := k.entries[key]
	if !ok {
		return payload, false, false
	}
	return e.Payload, time.Since(e.GeneratedAt) < k.ttl, true
}

// Set replaces the snapshot for key.
func (k *Keyed[T]) Set(key string, v T) {
	k.mu.Lock()
	k.entries[key] = &Entry[T]{Payload: v, GeneratedAt: time.Now()}
	k.mu.Unlock()
}

// GetOrRefresh mirrors Store.GetOrRefresh per key: fresh snapshot served
// directly, misses refreshed synchronously behind a per-key in-flight guard,
// stale snapshots served when the refresh fails.
func (k *Keyed[T]) GetOrRefresh(ctx context.Context, key string, refresh func(context.Context) (T, error)) (T, error) {
	if v, fresh, _ := k.Get(key); fresh {
		return v, nil
	}

	res, err, _ := k.flight.Do(key, func() (interface{}, error) {
		if v, fresh, _ := k.Get(key); fresh {
			return v, nil
		}
		v, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		k.Set(key, v)
		return v, nil
	})
	if err != nil {
		if v, _, exists := k.Get(key); exists {
			return v, nil
		}
		var zero T
		return zero, err
	}
	return res.(T), nil
}
