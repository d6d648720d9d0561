package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_SelectsDBAndTimeouts(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(s.Addr(), 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	opts := c.Options()
	if opts.DB != 2 {
		t.Fatalf("client DB = %d, want 2", opts.DB)
	}
	if opts.ReadTimeout != 2*time.Second || opts.DialTimeout != 3*time.Second {
		t.Fatalf("timeouts not applied: dial=%v read=%v", opts.DialTimeout, opts.ReadTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "lock:tb:pool", "token", time.Second).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	// the key lands in DB 2, not the default DB
	s.Select(2)
	if !s.Exists("lock:tb:pool") {
		t.Fatalf("key missing from db 2")
	}
}

func TestOpenRedis_Failure(t *testing.T) {
	_, err := OpenRedis("not-a-real-host:6379", 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "not-a-real-host:6379") {
		t.Fatalf("error should name the address: %v", err)
	}
}

func TestPing(t *testing.T) {
	s := miniredis.RunT(t)
	c, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })

	check := Ping(c)
	if err := check(context.Background()); err != nil {
		t.Fatalf("ping up: %v", err)
	}
	s.Close()
	if err := check(context.Background()); err == nil {
		t.Fatalf("ping should fail once the server is gone")
	}
}
