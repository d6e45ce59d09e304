// Package cache keeps upstream read results for a short time. Entries are
// only ever dropped after a mutation, never patched in place.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"stayease/pkg/logger"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	// generation moves on every invalidation so loads that started before
	// it do not write stale results back.
	generation uint64

	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group
	log    *logger.Logger
	stopCh chan struct{}
	once   sync.Once
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore starts a background sweep every cleanupInterval. Call Stop to end it.
func NewStore(log *logger.Logger, ttl, cleanupInterval time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		log:     log,
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanup(cleanupInterval)

	return s
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
}

func (s *Store) setIfGeneration(key string, value any, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return false
	}
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
	return true
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

func (s *Store) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	removed := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	removed := len(s.entries)
	s.entries = make(map[string]entry)
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Store) sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("Cache sweep removed expired entries", "count", removed)
	}
	return removed
}

func (s *Store) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
	})
}

// GetOrLoad returns the cached value for key or calls load once, however
// many callers ask for the same key concurrently. Callers only join a load
// started in the same generation, so a read issued after an invalidation
// never receives a result fetched before it.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	generation := s.currentGeneration()
	flight := key + "#" + strconv.FormatUint(generation, 10)
	v, err, _ := s.group.Do(flight, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if !s.setIfGeneration(key, value, generation) {
			s.log.Debug("Discarded load that raced an invalidation", "key", key)
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
