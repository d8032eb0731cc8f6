package cache

import (
	"unsafe"

	"github.com/coocood/freecache"

	"github.com/MrSnakeDoc/statuary/internal/logger"
)

// Cache is a byte cache keyed by string.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// HitCounter is told about every Get outcome.
type HitCounter interface {
	IncCacheHit(cache string)
	IncCacheMiss(cache string)
}

// FreeCache is a Cache backed by a fixed-size freecache arena.
type FreeCache struct {
	cache *freecache.Cache
	ttl   int // seconds, 0 = no expiry
}

// New returns a freecache-backed cache, or a no-op cache when sizeBytes
// is not positive.
func New(sizeBytes, ttlSeconds int, log logger.Logger) Cache {
	if sizeBytes <= 0 {
		log.Info("recommendation cache disabled")
		return noopCache{}
	}

	log.Info("recommendation cache initialized",
		logger.Int("size_bytes", sizeBytes),
		logger.Int("ttl_seconds", ttlSeconds))

	return &FreeCache{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttlSeconds,
	}
}

// unsafeStringToBytes converts without allocating. freecache copies keys,
// so the result is only read.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *FreeCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *FreeCache) Set(key string, value []byte) {
	_ = c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
}

// EntryCount returns the number of cached entries.
func (c *FreeCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (noopCache) Get(string) ([]byte, bool) { return nil, false }
func (noopCache) Set(string, []byte)        {}

// Instrumented counts hits and misses of an inner cache.
type Instrumented struct {
	name    string
	inner   Cache
	counter HitCounter
}

// WithHitCounter wraps c. A disabled (no-op) cache is returned as is so
// it does not report phantom misses.
func WithHitCounter(name string, c Cache, counter HitCounter) Cache {
	if _, disabled := c.(noopCache); disabled || counter == nil {
		return c
	}
	return &Instrumented{name: name, inner: c, counter: counter}
}

func (c *Instrumented) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.counter.IncCacheHit(c.name)
	} else {
		c.counter.IncCacheMiss(c.name)
	}
	return val, ok
}

func (c *Instrumented) Set(key string, value []byte) {
	c.inner.Set(key, value)
}
