package cache

import (
	"context"
	"log"
	"strings"
)

// Build returns the backend selected by c.Backend. A redis backend must accept a startup write;
// if it cannot be built or written to, Build logs a warning and falls back to memory. It never
// fails.
func Build(ctx context.Context, c Config) Backend {
	driver := strings.ToLower(strings.TrimSpace(c.Backend))
	switch {
	case driver == "redis" && strings.TrimSpace(c.URL) != "":
		r, err := NewRedis(ctx, c.URL, c.TTL)
		if err == nil {
			err = r.Set(ctx, StartupKey, map[string]string{"status": "ready"})
			if err == nil {
				log.Printf("[valinor][cache] using redis backend ttl=%s", r.ttl)
				return r
			}
			_ = r.Close()
		}
		log.Printf("[valinor][cache] WARN redis init failed, falling back to memory: %v", err)
	case driver == "redis":
		log.Printf("[valinor][cache] WARN redis backend selected without a url, using memory")
	case driver != "" && driver != "memory":
		log.Printf("[valinor][cache] WARN unknown backend %q, using memory", c.Backend)
	}

	m := NewMemory(c.TTL, c.MaxSize)
	log.Printf("[valinor][cache] using memory backend ttl=%s max_size=%d", m.ttl, m.maxSize)
	return m
}
