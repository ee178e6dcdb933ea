package cache

import (
	"time"

	"valinor/pkg/cfg"
)

type Config struct {
	Backend string
	URL     string
	TTL     time.Duration
	MaxSize int
}

// LoadConfigFromEnv reads the cache settings straight from the environment, for tools that run
// without the full settings layer.
func LoadConfigFromEnv() Config {
	return Config{
		Backend: cfg.String("CACHE_BACKEND", "memory"),
		URL:     cfg.String("CACHE_URL", ""),
		TTL:     cfg.Duration("CACHE_TTL", DefaultTTL),
		MaxSize: cfg.Int("CACHE_MAX_SIZE", DefaultMaxSize),
	}
}
