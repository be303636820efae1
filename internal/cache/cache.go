// Package cache implements the cache-aside layer used by the read endpoints.
// The cache is an optional accelerator: every failure or miss falls through
// to the loader, and a disabled store degrades to a no-op.
package cache

import (
	"log"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Source tags where a fetched value came from.
type Source string

// Fetch result sources.
const (
	SourceCache Source = "cache"
	SourceDB    Source = "db"
)

// DefaultTTL is used when a Store is created without an explicit TTL.
const DefaultTTL = time.Hour

// CompareTTL is the shorter lifetime for derived comparison results.
const CompareTTL = 10 * time.Minute

const cleanupInterval = 10 * time.Minute

// Store wraps the in-process key/value cache. A nil or disabled Store is
// safe to use; all operations become no-ops.
type Store struct {
	enabled    bool
	defaultTTL time.Duration
	backend    *gocache.Cache
	group      singleflight.Group
}

// New creates an enabled Store with the given default TTL.
func New(defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store{
		enabled:    true,
		defaultTTL: defaultTTL,
		backend:    gocache.New(defaultTTL, cleanupInterval),
	}
}

// NewDisabled creates a Store whose operations are all no-ops. Used when
// caching is switched off by configuration.
func NewDisabled() *Store {
	return &Store{}
}

// Enabled reports whether the store is active.
func (s *Store) Enabled() bool {
	return s != nil && s.enabled
}

// Get returns the cached value for key, or (nil, false) on a miss.
func (s *Store) Get(key string) (any, bool) {
	if !s.Enabled() {
		return nil, false
	}
	return s.backend.Get(key)
}

// Set stores value under key for the given TTL. A non-positive TTL uses the
// store default.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.backend.Set(key, value, ttl)
}

// Delete removes key from the cache. Deleting an absent key is a no-op.
func (s *Store) Delete(keys ...string) {
	if !s.Enabled() {
		return
	}
	for _, key := range keys {
		s.backend.Delete(key)
	}
}

// Fetch implements the cache-or-database dual read: it returns the cached
// value for key if present, otherwise invokes loader, populates the cache
// and returns the loaded value. The returned Source tags which path was
// taken. Concurrent fetches for the same key share a single loader call.
func Fetch[T any](s *Store, key string, ttl time.Duration, loader func() (T, error)) (T, Source, error) {
	if !s.Enabled() {
		v, err := loader()
		return v, SourceDB, err
	}

	if cached, ok := s.backend.Get(key); ok {
		if v, ok := cached.(T); ok {
			return v, SourceCache, nil
		}
		// Stale entry of a different shape; treat as a miss.
		log.Printf("cache: unexpected value type for key %s, reloading", key)
		s.backend.Delete(key)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		loaded, err := loader()
		if err != nil {
			return loaded, err
		}
		s.Set(key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, SourceDB, err
	}
	return v.(T), SourceDB, nil
}
