// Package cache provides the retrieval context cache: a memory tier,
// a disk tier, and a layered combination of both.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface shared by all tiers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a request description
func Key(request string) string {
	hash := sha256.Sum256([]byte(request))
	return "worldmind:v1:" + hex.EncodeToString(hash[:])
}
