// Package cache provides in-process memoization for repeated match
// lookups. Persistence across restarts is deliberately absent: every
// report is a pure function of its inputs, so there is nothing durable to
// keep.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for memoization backends.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from its parts (typically vocabulary
// version plus normalized label).
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "restate:v1:" + hex.EncodeToString(hash[:])
}
