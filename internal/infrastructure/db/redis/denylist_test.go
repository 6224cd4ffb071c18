package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestDenylist_Key(t *testing.T) {
	d := NewDenylist(nil)
	if got := d.key("abc"); got != "session:revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestDenylist_RevokeExpiredTokenIsNoop(t *testing.T) {
	// Unreachable address: any round trip would fail the test.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	d := NewDenylist(client)
	d.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	if err := d.Revoke(context.Background(), "jti", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("expected no-op for expired token, got %v", err)
	}
}
