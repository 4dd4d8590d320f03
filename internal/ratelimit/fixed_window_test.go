package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLimiter(t *testing.T, mr *miniredis.Miniredis, limit int) *FixedWindowLimiter {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", limit, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return limiter
}

func TestFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := newLimiter(t, miniredis.RunT(t), 2)
	fixed := time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	if !limiter.Allow(ctx, "login:alice").Allowed {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow(ctx, "login:alice").Allowed {
		t.Fatalf("second request should pass")
	}
	d := limiter.Allow(ctx, "login:alice")
	if d.Allowed {
		t.Fatalf("third request should be blocked")
	}
	if d.RetryAfter != 30*time.Second {
		t.Fatalf("unexpected retry after: %v", d.RetryAfter)
	}
	if !limiter.Allow(ctx, "login:bob").Allowed {
		t.Fatalf("other keys keep their own quota")
	}

	fixed = fixed.Add(time.Minute)
	if !limiter.Allow(ctx, "login:alice").Allowed {
		t.Fatalf("next window should reset the quota")
	}
}

func TestFixedWindowLimiterFailClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := newLimiter(t, mr, 1)
	mr.Close()
	if limiter.Allow(context.Background(), "login:alice").Allowed {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestFixedWindowLimiterRequiresClient(t *testing.T) {
	limiter, err := NewFixedWindowLimiter(nil, "test:ratelimit", 1, time.Second)
	if err == nil || limiter != nil {
		t.Fatalf("expected constructor error without a client")
	}
}
