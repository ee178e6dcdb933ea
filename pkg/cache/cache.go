package cache

import (
	"context"
	"time"
)

const (
	DefaultTTL     = 900 * time.Second
	DefaultMaxSize = 256

	// StartupKey is written once when a remote backend is built to prove it accepts writes.
	StartupKey = "valinor:startup"
)

// Backend stores JSON-serializable values by key. The TTL is fixed when the backend is built.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get decodes the value stored under key into dst. It reports false when the key is
	// missing or expired.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value under key for the backend TTL.
	Set(ctx context.Context, key string, value any) error

	// Name identifies the variant ("memory" or "redis") for logs and health output.
	Name() string

	Close() error
}
