package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process LRU cache. Expired entries are dropped lazily on read.
type Memory struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// NewMemory creates a memory cache holding at most size entries.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = 1024
	}
	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Memory{entries: entries, now: time.Now}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		m.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}
	m.entries.Add(key, entry)
	return nil
}

func (m *Memory) Close() error {
	m.entries.Purge()
	return nil
}
