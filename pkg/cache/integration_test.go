//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "integration:" + time.Now().Format(time.RFC3339Nano)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get on fresh key = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}

	if cl, ok := c.(Clearer); ok {
		if err := c.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
		n, err := cl.Clear(ctx)
		if err != nil || n < 1 {
			t.Errorf("Clear() = %d, %v, want >= 1, nil", n, err)
		}
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("APINAV_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("APINAV_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr, Prefix: "apinav-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("APINAV_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("APINAV_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), MongoConfig{URI: uri, Database: "apinav_test"})
	if err != nil {
		t.Fatalf("NewMongoCache error: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)
}
