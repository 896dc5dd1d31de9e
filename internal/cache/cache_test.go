package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client)
}

func TestGetSetRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := Key("parsed", "file-bytes", "gemini", "gemini-2.0-flash")

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Set(ctx, key, []byte(`{"contact":{"name":"Ada"}}`), ParsedTTL)
	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(got) != `{"contact":{"name":"Ada"}}` {
		t.Fatalf("payload = %s", got)
	}
}

func TestKeyDependsOnAllParts(t *testing.T) {
	a := Key("parsed", "same-bytes", "gemini", "model-a")
	b := Key("parsed", "same-bytes", "gemini", "model-b")
	if a == b {
		t.Fatal("keys should differ when any part differs")
	}
}

func TestStatsAndClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, Key("artifact", "doc1"), []byte("pdf"), ArtifactTTL)
	c.Set(ctx, Key("artifact", "doc2"), []byte("pdf"), ArtifactTTL)
	c.Get(ctx, Key("artifact", "doc1"))
	c.Get(ctx, Key("artifact", "missing"))

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !stats.Enabled || stats.Keys != 2 || stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	removed, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	stats, err = c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Keys != 0 {
		t.Fatalf("keys after clear = %d", stats.Keys)
	}
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.Enabled() {
		t.Fatal("cache without redis url should be disabled")
	}
	ctx := context.Background()
	c.Set(ctx, Key("parsed", "x"), []byte("y"), time.Minute)
	if _, ok := c.Get(ctx, Key("parsed", "x")); ok {
		t.Fatal("disabled cache should always miss")
	}
	if _, err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
}
