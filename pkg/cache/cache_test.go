package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if n, err := c.(Clearer).Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v, want 0, nil", n, err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	type doc struct {
		A string `json:"a"`
	}
	h1, err := HashJSON(doc{A: "x"})
	if err != nil {
		t.Fatalf("HashJSON error: %v", err)
	}
	if h1 != Hash([]byte(`{"a":"x"}`)) {
		t.Errorf("HashJSON() = %s, want hash of canonical JSON", h1)
	}
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("HashJSON(chan) should fail")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ArtifactKeyOpts{Output: "graph", Format: "svg", Root: "svc"}

	ak := k.ArtifactKey("hash123", base)
	if !strings.HasPrefix(ak, "artifact:") || len(ak) != len("artifact:")+64 {
		t.Errorf("ArtifactKey unexpected: %s", ak)
	}
	if ak != k.ArtifactKey("hash123", base) {
		t.Error("ArtifactKey should be deterministic")
	}

	variants := []ArtifactKeyOpts{
		{Output: "toc", Format: "svg", Root: "svc"},
		{Output: "graph", Format: "png", Root: "svc"},
		{Output: "graph", Format: "svg", Root: "other"},
		{Output: "graph", Format: "svg", Root: "svc", Subject: "m"},
		{Output: "graph", Format: "svg", Root: "svc", HideSchemas: true},
		{Output: "graph", Format: "svg", Root: "svc", HideInternal: true},
		{Output: "graph", Format: "svg", Root: "svc", Detailed: true},
	}
	for _, v := range variants {
		if k.ArtifactKey("hash123", v) == ak {
			t.Errorf("ArtifactKeyOpts %+v should produce a different key", v)
		}
	}
	if k.ArtifactKey("hash456", base) == ak {
		t.Error("Different document hashes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "apinav:v1:")

	opts := ArtifactKeyOpts{Output: "toc", Format: "json"}
	got := scoped.ArtifactKey("h", opts)
	if got != "apinav:v1:"+inner.ArtifactKey("h", opts) {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{})
	if !strings.HasPrefix(key, "prefix:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestPing(t *testing.T) {
	defer func(d time.Duration) { pingDelay = d }(pingDelay)
	pingDelay = time.Millisecond

	ctx := context.Background()
	down := errors.New("connection refused")

	tests := []struct {
		name      string
		failures  int
		wantErr   bool
		wantCalls int
	}{
		{"up", 0, false, 1},
		{"recovers", 1, false, 2},
		{"down", 10, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := ping(ctx, "test", func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return down
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNetwork) {
				t.Errorf("ping() error = %v, want ErrNetwork", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("ping() calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestPingContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ping(ctx, "test", func(context.Context) error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ping() error = %v, want context.Canceled", err)
	}
}
