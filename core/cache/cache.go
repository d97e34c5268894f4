package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a byte-oriented cache with per-entry expiry.
type Store interface {
	// Get returns the cached value and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close releases backend resources.
	Close() error
}

// New builds the Store selected by cfg.Driver.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemory(cfg.Size)
	case DriverRedis:
		return OpenRedis(cfg)
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}
