package utils

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// KeyedCache holds loaded values for the lifetime of the process, keyed by
// an opaque string. There is no expiration: entries are invalidated only
// through Clear, matching the session-cache contract of the dashboard.
type KeyedCache[T any] struct {
	entries map[string]T
	mutex   sync.RWMutex
}

// NewKeyedCache initializes an empty cache.
func NewKeyedCache[T any]() *KeyedCache[T] {
	return &KeyedCache[T]{entries: make(map[string]T)}
}

// Get retrieves the cached value for key, if present.
func (c *KeyedCache[T]) Get(key string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, ok := c.entries[key]
	return value, ok
}

// Set stores a value under key, replacing any previous entry.
func (c *KeyedCache[T]) Set(key string, value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = value
}

// Clear removes every cached entry.
func (c *KeyedCache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]T)
}

// Len returns the number of cached entries.
func (c *KeyedCache[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// CacheKey generates a deterministic UUID from the resolved input paths of
// a load operation, so repeated loads of the same sources hit the same entry.
func CacheKey(inputs ...string) string {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8") // DNS namespace

	combined := strings.Join(inputs, "|")
	return uuid.NewMD5(namespace, []byte(combined)).String()
}
