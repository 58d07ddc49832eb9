// Package memocache memoizes generation results by exact input text.
// The cache is shared for the process lifetime and bounded by entry
// count; least-recently-used entries are evicted once the bound is hit.
package memocache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the entry bound used when MEMO_CACHE_SIZE is not set.
const DefaultSize = 128

// Cache maps input text to a previously computed value of type V.
// Keys are content hashes, so byte-identical inputs hit and any
// difference, even whitespace, misses.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

// New creates a cache bounded to size entries. Non-positive sizes fall
// back to DefaultSize.
func New[V any](size int) *Cache[V] {
	if size <= 0 {
		size = DefaultSize
	}
	// lru.New only errors on non-positive size, which is guarded above.
	c, _ := lru.New[string, V](size)
	return &Cache[V]{lru: c}
}

// SizeFromEnv reads the configured cache bound from MEMO_CACHE_SIZE.
func SizeFromEnv() int {
	if v := os.Getenv("MEMO_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultSize
}

// Get returns the memoized value for text, if present.
func (c *Cache[V]) Get(text string) (V, bool) {
	return c.lru.Get(key(text))
}

// Add memoizes value under text.
func (c *Cache[V]) Add(text string, value V) {
	c.lru.Add(key(text), value)
}

// Len reports the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

func key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
