// Package cache provides the byte cache used to memoize ranked candidate
// lists. Ranking is a pure function of (index, query, top_k, parameters),
// so cached results are always identical to a fresh computation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from the query and every ranking parameter
// that influences the result. Changing any parameter changes the key.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "veripack:v1:" + hex.EncodeToString(hash[:])
}
