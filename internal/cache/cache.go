package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the search query cache
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// QueryKey generates a cache key from the exact search query string.
// Identical queries always map to the same key, so cache hits return the
// previously retrieved results verbatim.
func QueryKey(query string) string {
	hash := sha256.Sum256([]byte(query))
	return "truthscan:q1:" + hex.EncodeToString(hash[:])
}
