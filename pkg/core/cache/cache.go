// Package cache holds the process-wide snapshot caches and the background
// refresh scheduler. A store moves Empty -> Fresh -> Stale -> Fresh...; a
// failed refresh while Stale keeps serving the stale snapshot. Availability
// wins over strict consistency everywhere in this service.
package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is one immutable cache snapshot. Snapshots are replaced wholesale,
// never mutated in place, so a concurrent reader sees either the old or the
// new payload and nothing in between.
type Entry[T any] struct {
	Payload     T
	GeneratedAt time.Time
}

// Store is a single-key TTL cache for one payload type.
type Store[T any] struct {
	name string
	ttl  time.Duration

	mu    sync.RWMutex
	entry *Entry[T]

	flight singleflight.Group
}

// NewStore creates a store. name shows up in log lines and keys the
// in-flight guard.
func NewStore[T any](name string, ttl time.Duration) *Store[T] {
	return &Store[T]{name: name, ttl: ttl}
}

// Get returns the current payload plus freshness and existence flags.
func (s *Store[T]) Get() (payload T, fresh, exists bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return payload, false, false
	}
	return s.entry.Payload, time.Since(s.entry.GeneratedAt) < s.ttl, true
}

// Set replaces the snapshot wholesale with a new generation timestamp.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.entry = &Entry[T]{Payload: v, GeneratedAt: time.Now()}
	s.mu.Unlock()
}

// GeneratedAt reports when the current snapshot was produced, nil when Empty.
func (s *Store[T]) GeneratedAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return nil
	}
	t := s.entry.GeneratedAt
	return &t
}

// GetOrRefresh returns the cached payload when fresh; otherwise it invokes
// refresh synchronously and stores the result. Concurrent misses on the same
// store share one refresh call through the in-flight guard. When refresh
// fails but a stale snapshot exists, the stale snapshot is served and the
// error is only logged; the error propagates solely from an Empty store.
func (s *Store[T]) GetOrRefresh(ctx context.Context, refresh func(context.Context) (T, error)) (T, error) {
	if v, fresh, _ := s.Get(); fresh {
		return v, nil
	}

	res, err, _ := s.flight.Do(s.name, func() (interface{}, error) {
		// A concurrent caller may have refreshed while we waited.
		if v, fresh, _ := s.Get(); fresh {
			return v, nil
		}
		v, err := refresh(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(v)
		return v, nil
	})
	if err != nil {
		if v, _, exists := s.Get(); exists {
			log.Printf("[cache] %s: refresh failed, serving stale snapshot: %v", s.name, err)
			return v, nil
		}
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// ForceRefresh ignores the TTL: it unconditionally recomputes and replaces
// the snapshot. Wired to the administrative refresh trigger.
func (s *Store[T]) ForceRefresh(ctx context.Context, refresh func(context.Context) (T, error)) (T, error) {
	v, err := refresh(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.Set(v)
	return v, nil
}
