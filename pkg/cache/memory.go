package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is a bounded in-process cache. Entries expire after the TTL and the least recently
// used entry is evicted once maxSize is exceeded. Values are kept as JSON so a hit hands back
// a fresh copy.
//
// Expired entries are dropped when read, so no background goroutine is started.
type Memory struct {
	lru     *lru.Cache[string, memoryEntry]
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

func NewMemory(ttl time.Duration, maxSize int) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[string, memoryEntry](maxSize)
	return &Memory{lru: c, ttl: ttl, maxSize: maxSize, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return false, nil
	}
	if !m.now().Before(e.expires) {
		m.lru.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(e.value, dst); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	m.lru.Add(key, memoryEntry{value: b, expires: m.now().Add(m.ttl)})
	return nil
}

func (m *Memory) Name() string { return "memory" }

// Len reports the number of live entries.
func (m *Memory) Len() int {
	now := m.now()
	n := 0
	for _, k := range m.lru.Keys() {
		if e, ok := m.lru.Peek(k); ok && now.Before(e.expires) {
			n++
		}
	}
	return n
}

func (m *Memory) TTL() time.Duration { return m.ttl }

// Close drops every entry.
func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
