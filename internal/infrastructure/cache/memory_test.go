package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/unitprice/backend/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	cache := NewMemoryCache(0)
	t.Cleanup(cache.Close)
	return cache
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	t.Run("store and retrieve string", func(t *testing.T) {
		if err := cache.Set(ctx, "string-key", "test-value", time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		var got string
		if err := cache.Get(ctx, "string-key", &got); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "test-value" {
			t.Errorf("Get() = %q, want %q", got, "test-value")
		}
	})

	t.Run("store and retrieve comparison", func(t *testing.T) {
		want := &domain.Comparison{
			ID:       "cmp-1",
			BaseUnit: domain.Liter,
			Results: []domain.PriceResult{
				{Label: "Product 1", Price: 3.99, Quantity: 2, Unit: domain.Liter, PricePerUnit: 1.995, Display: "Product 1: $1.99500 per L"},
				{Label: "Product 2", Unit: domain.Kilogram, Error: "incompatible units: cannot convert from kg to L"},
			},
			BestValue:    "Product 1",
			Source:       "Computed",
			CalculatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}
		if err := cache.Set(ctx, "comparison-key", want, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		var got domain.Comparison
		if err := cache.Get(ctx, "comparison-key", &got); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != want.ID || got.BaseUnit != want.BaseUnit || got.BestValue != want.BestValue {
			t.Errorf("Get() = %+v, want %+v", got, *want)
		}
		if len(got.Results) != 2 || got.Results[0].Display != want.Results[0].Display || got.Results[1].Error != want.Results[1].Error {
			t.Errorf("Results = %+v, want %+v", got.Results, want.Results)
		}
		if !got.CalculatedAt.Equal(want.CalculatedAt) {
			t.Errorf("CalculatedAt = %v, want %v", got.CalculatedAt, want.CalculatedAt)
		}
	})

	t.Run("stored values are copies", func(t *testing.T) {
		value := &domain.Comparison{ID: "original"}
		if err := cache.Set(ctx, "copy-key", value, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		value.ID = "mutated"

		var got domain.Comparison
		if err := cache.Get(ctx, "copy-key", &got); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != "original" {
			t.Errorf("ID = %q, want original", got.ID)
		}
	})

	t.Run("expired entries miss", func(t *testing.T) {
		if err := cache.Set(ctx, "short-ttl", "expires-soon", time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		var got string
		if err := cache.Get(ctx, "short-ttl", &got); err != domain.ErrCacheMiss {
			t.Errorf("Expected cache miss after expiration, got error = %v", err)
		}
	})
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t)

	var got string
	err := cache.Get(context.Background(), "non-existent-key", &got)
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key := "delete-test"
	if err := cache.Set(ctx, key, "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	var got string
	if err := cache.Get(ctx, key, &got); err != domain.ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_CloseDropsEntries(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	ctx := context.Background()

	if err := cache.Set(ctx, "dropped", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	cache.Close()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after close", size)
	}
}

func TestMemoryCache_Purge(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "stale", 1, time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set(ctx, "fresh", 2, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	removed := cache.purge(time.Now().Add(time.Minute))
	if removed != 1 {
		t.Errorf("purge() = %d, want 1", removed)
	}
	if size := cache.Size(); size != 1 {
		t.Errorf("Size() = %d, want 1 after purge", size)
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 for empty cache", size)
	}

	for i := 0; i < 5; i++ {
		if err := cache.Set(ctx, string(rune('a'+i)), i, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	cache.Clear()
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after clear", size)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := string(rune('a' + id))
			if err := cache.Set(ctx, key, id, time.Minute); err != nil {
				t.Errorf("Concurrent Set() error = %v", err)
			}
			var got int
			if err := cache.Get(ctx, key, &got); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
			if got != id {
				t.Errorf("Concurrent Get() = %d, want %d", got, id)
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	cache.Close()
	cache.Close()
}
