// Package cache provides the byte-oriented cache used for job listings,
// with an in-process implementation and a Redis implementation in the redis
// subpackage.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("cache: key not found")
	ErrClosed     = errors.New("cache: closed")
	ErrInvalidKey = errors.New("cache: invalid key")
)

// Cache stores opaque values under string keys with a per entry TTL.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	Close() error
}

// Key builds a deterministic, fixed length key from parts.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("nd:%x", sum[:12])
}
