// Package cache memoises segmentation results across runs.
package cache

import (
	"encoding/hex"
	"time"

	"github.com/zeebo/blake3"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a namespace (usually the segmenter backend)
// and the text being segmented. Distinct backends never share entries.
func Key(namespace, text string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(namespace))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	return "acevents-v1-" + hex.EncodeToString(h.Sum(nil))
}
