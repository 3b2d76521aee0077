package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestAvailabilityKey(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("7b2f3c1e-0d8a-4c55-9a61-2f1b9d4e8c00")
	if got, want := AvailabilityKey(id), "flight:7b2f3c1e-0d8a-4c55-9a61-2f1b9d4e8c00:availability"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, c := range map[string]*Cache{
		"nil cache":  nil,
		"nil client": New(nil, time.Minute, zap.NewNop()),
	} {
		if c.Enabled() {
			t.Fatalf("%s: expected disabled", name)
		}
		c.SetJSON(ctx, "k", map[string]int{"a": 1})
		c.Delete(ctx, "k")
		var dst map[string]int
		if c.GetJSON(ctx, "k", &dst) {
			t.Fatalf("%s: expected miss", name)
		}
	}
}

func TestNewRedisClientWithoutAddr(t *testing.T) {
	t.Parallel()

	client, err := NewRedisClient(context.Background(), utils.RedisConfig{})
	if err != nil || client != nil {
		t.Fatalf("expected nil client and nil error, got %v %v", client, err)
	}
}

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	client, err := NewRedisClient(ctx, utils.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	c := New(client, time.Minute, zap.NewNop())
	key := AvailabilityKey(uuid.New())

	type payload struct {
		Capacity int `json:"capacity"`
	}
	c.SetJSON(ctx, key, payload{Capacity: 50})

	var got payload
	if !c.GetJSON(ctx, key, &got) || got.Capacity != 50 {
		t.Fatalf("expected cached payload, got %+v", got)
	}

	c.Delete(ctx, key)
	if c.GetJSON(ctx, key, &got) {
		t.Fatal("expected miss after delete")
	}
}
