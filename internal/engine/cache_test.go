package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKeyDeterministic(t *testing.T) {
	k1 := CacheKey("channel", "https://youtube.com/@test", "20")
	k2 := CacheKey("channel", "https://youtube.com/@test", "20")
	if k1 != k2 {
		t.Errorf("same parts produced different keys: %q vs %q", k1, k2)
	}
	k3 := CacheKey("channel", "https://youtube.com/@other", "20")
	if k1 == k3 {
		t.Error("different parts produced the same key")
	}
	if len(k1) != len("yti:")+24 {
		t.Errorf("unexpected key length: %q", k1)
	}
}

func TestCacheStoreAndGet(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	key := CacheKey("channel", "store-and-get")
	snap := &ChannelSnapshot{
		ChannelName: "Test Channel",
		Videos:      []VideoRecord{{ID: "v1", Title: "First", Views: 1000}},
	}
	StoreSnapshot(ctx, key, snap)

	got, ok := CachedSnapshot(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.ChannelName != "Test Channel" {
		t.Errorf("ChannelName = %q, want stored snapshot", got.ChannelName)
	}
	if len(got.Videos) != 1 || got.Videos[0].Views != 1000 {
		t.Errorf("Videos = %+v, want stored video record", got.Videos)
	}
}

func TestCacheMiss(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)
	if _, ok := CachedSnapshot(context.Background(), CacheKey("never", "stored")); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCacheExpiry(t *testing.T) {
	InitCache("", 10*time.Millisecond, 100, time.Minute)
	ctx := context.Background()

	key := CacheKey("channel", "expiry")
	StoreSnapshot(ctx, key, &ChannelSnapshot{ChannelName: "Ephemeral"})
	time.Sleep(20 * time.Millisecond)

	if _, ok := CachedSnapshot(ctx, key); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", time.Minute, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := CacheKey("channel", fmt.Sprintf("evict-%d", i))
		StoreSnapshot(ctx, key, &ChannelSnapshot{ChannelName: fmt.Sprintf("ch-%d", i)})
		time.Sleep(time.Millisecond) // distinct expiry ordering
	}

	count := 0
	snapCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("L1 holds %d entries, want at most 3", count)
	}

	// Newest entry must survive eviction.
	if _, ok := CachedSnapshot(ctx, CacheKey("channel", "evict-4")); !ok {
		t.Error("newest entry was evicted")
	}
}

func TestCacheNilSafe(t *testing.T) {
	old := snapCache
	snapCache = nil
	defer func() { snapCache = old }()

	ctx := context.Background()
	StoreSnapshot(ctx, "k", &ChannelSnapshot{})
	if _, ok := CachedSnapshot(ctx, "k"); ok {
		t.Error("uninitialized cache should always miss")
	}
}
