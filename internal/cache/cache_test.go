package cache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/cache"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

func TestFetch(t *testing.T) {
	t.Run("miss loads from the loader and tags source db", func(t *testing.T) {
		store := cache.New(time.Minute)
		calls := 0

		value, source, err := cache.Fetch(store, "key", time.Minute, func() ([]string, error) {
			calls++
			return []string{"a", "b"}, nil
		})
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if source != cache.SourceDB {
			t.Errorf("Expected source db, got %s", source)
		}
		if len(value) != 2 {
			t.Errorf("Expected 2 elements, got %d", len(value))
		}
		if calls != 1 {
			t.Errorf("Expected 1 loader call, got %d", calls)
		}
	})

	t.Run("second fetch hits the cache and tags source cache", func(t *testing.T) {
		store := cache.New(time.Minute)
		calls := 0
		loader := func() (string, error) {
			calls++
			return "value", nil
		}

		if _, _, err := cache.Fetch(store, "key", time.Minute, loader); err != nil {
			t.Fatalf("First fetch failed: %v", err)
		}
		value, source, err := cache.Fetch(store, "key", time.Minute, loader)
		if err != nil {
			t.Fatalf("Second fetch failed: %v", err)
		}

		if source != cache.SourceCache {
			t.Errorf("Expected source cache, got %s", source)
		}
		if value != "value" {
			t.Errorf("Expected cached value, got %q", value)
		}
		if calls != 1 {
			t.Errorf("Expected 1 loader call, got %d", calls)
		}
	})

	t.Run("loader errors are returned and not cached", func(t *testing.T) {
		store := cache.New(time.Minute)
		boom := errors.New("db down")

		_, _, err := cache.Fetch(store, "key", time.Minute, func() (int, error) {
			return 0, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected loader error, got %v", err)
		}

		// The failure must not be served from the cache afterwards.
		value, source, err := cache.Fetch(store, "key", time.Minute, func() (int, error) {
			return 42, nil
		})
		if err != nil {
			t.Fatalf("Fetch after failure failed: %v", err)
		}
		if source != cache.SourceDB || value != 42 {
			t.Errorf("Expected fresh load of 42 from db, got %d from %s", value, source)
		}
	})

	t.Run("disabled store always loads", func(t *testing.T) {
		store := cache.NewDisabled()
		calls := 0
		loader := func() (string, error) {
			calls++
			return "value", nil
		}

		for i := 0; i < 3; i++ {
			_, source, err := cache.Fetch(store, "key", time.Minute, loader)
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if source != cache.SourceDB {
				t.Errorf("Expected source db, got %s", source)
			}
		}
		if calls != 3 {
			t.Errorf("Expected 3 loader calls, got %d", calls)
		}
	})
}

func TestInvalidation(t *testing.T) {
	t.Run("IPO invalidation clears list, status and id keys", func(t *testing.T) {
		store := cache.New(time.Minute)
		store.Set(cache.KeyAllIPOs, "lists", 0)
		store.Set(cache.KeyUpcomingIPOs, "upcoming", 0)
		store.Set(cache.IPOStatusKey(model.IPOStatusOpen), "open", 0)
		store.Set(cache.IPOKey("some-id"), "entity", 0)
		store.Set(cache.KeyAllBrokers, "brokers", 0)

		cache.InvalidateIPOs(store, "some-id")

		for _, key := range []string{
			cache.KeyAllIPOs,
			cache.KeyUpcomingIPOs,
			cache.IPOStatusKey(model.IPOStatusOpen),
			cache.IPOKey("some-id"),
		} {
			if _, ok := store.Get(key); ok {
				t.Errorf("Expected key %s to be invalidated", key)
			}
		}
		if _, ok := store.Get(cache.KeyAllBrokers); !ok {
			t.Error("Broker key should not be touched by IPO invalidation")
		}
	})
}

func TestBrokerCompareKey(t *testing.T) {
	a := cache.BrokerCompareKey([]string{"b", "a", "c"})
	b := cache.BrokerCompareKey([]string{"c", "b", "a"})
	if a != b {
		t.Errorf("Expected order-independent key, got %q and %q", a, b)
	}
}
