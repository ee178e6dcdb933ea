package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/alicebob/miniredis/v2/server"
)

func TestBuild_Memory(t *testing.T) {
	b := Build(context.Background(), Config{Backend: " Memory ", TTL: time.Minute, MaxSize: 8})
	t.Cleanup(func() { _ = b.Close() })

	if b.Name() != "memory" {
		t.Fatalf("backend=%q want memory", b.Name())
	}
}

func TestBuild_RedisWritesStartupKey(t *testing.T) {
	mr := miniredis.RunT(t)

	b := Build(context.Background(), Config{Backend: "redis", URL: "redis://" + mr.Addr() + "/0", TTL: time.Minute})
	t.Cleanup(func() { _ = b.Close() })

	if b.Name() != "redis" {
		t.Fatalf("backend=%q want redis", b.Name())
	}
	raw, err := mr.Get(StartupKey)
	if err != nil {
		t.Fatalf("startup key missing: %v", err)
	}
	if raw != `{"status":"ready"}` {
		t.Fatalf("startup value=%q", raw)
	}
}

func TestBuild_FallsBackToMemory(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unreachable", Config{Backend: "redis", URL: "redis://127.0.0.1:1/0"}},
		{"bad url", Config{Backend: "redis", URL: "not-a-url"}},
		{"no url", Config{Backend: "redis"}},
		{"unknown driver", Config{Backend: "memcached", URL: "redis://127.0.0.1:1/0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Build(context.Background(), tt.cfg)
			t.Cleanup(func() { _ = b.Close() })
			if b.Name() != "memory" {
				t.Fatalf("backend=%q want memory", b.Name())
			}
		})
	}
}

// The server answers PING but the ACL denies writes, so the startup write is what fails.
func TestBuild_FallsBackWhenStartupWriteDenied(t *testing.T) {
	mr := miniredis.RunT(t)
	var pings, sets int32
	mr.Server().SetPreHook(func(c *server.Peer, cmd string, args ...string) bool {
		switch strings.ToUpper(cmd) {
		case "PING":
			atomic.AddInt32(&pings, 1)
		case "SET":
			atomic.AddInt32(&sets, 1)
			c.WriteError("NOPERM this user has no permissions to run the 'set' command")
			return true
		}
		return false
	})

	b := Build(context.Background(), Config{Backend: "redis", URL: "redis://" + mr.Addr() + "/0", TTL: time.Minute})
	t.Cleanup(func() { _ = b.Close() })

	if b.Name() != "memory" {
		t.Fatalf("backend=%q want memory", b.Name())
	}
	if atomic.LoadInt32(&pings) == 0 {
		t.Fatalf("expected PING to reach the server")
	}
	if atomic.LoadInt32(&sets) == 0 {
		t.Fatalf("expected the startup write to reach the server")
	}
	if mr.Exists(StartupKey) {
		t.Fatalf("startup key should not be stored")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("CACHE_URL", "redis://cache:6379/1")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("CACHE_MAX_SIZE", "")

	c := LoadConfigFromEnv()
	if c.Backend != "redis" || c.URL != "redis://cache:6379/1" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.TTL != 120*time.Second {
		t.Fatalf("ttl=%s want 2m", c.TTL)
	}
	if c.MaxSize != DefaultMaxSize {
		t.Fatalf("max size=%d want %d", c.MaxSize, DefaultMaxSize)
	}
}
