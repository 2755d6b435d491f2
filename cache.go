package textatlas

// lruCache is a generic cache with a soft entry limit. When the cache
// grows past the limit, the least recently used quarter is evicted.
// A softLimit of 0 means unlimited.
//
// The pipeline owns its caches from a single goroutine, so no locking
// is needed here.
type lruCache[K comparable, V any] struct {
	entries   map[K]*lruEntry[V]
	softLimit int
	tick      int64 // monotonic access counter
}

// lruEntry holds a cached value with its access time.
type lruEntry[V any] struct {
	value V
	atime int64
}

// newLRUCache creates a cache with the given soft limit.
func newLRUCache[K comparable, V any](softLimit int) *lruCache[K, V] {
	return &lruCache[K, V]{
		entries:   make(map[K]*lruEntry[V]),
		softLimit: softLimit,
	}
}

// get retrieves a value and refreshes its access time.
func (c *lruCache[K, V]) get(key K) (V, bool) {
	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	entry.atime = c.tick
	return entry.value, true
}

// getOrCreate returns the cached value for key, calling create and
// storing the result on a miss.
func (c *lruCache[K, V]) getOrCreate(key K, create func() V) V {
	if entry, ok := c.entries[key]; ok {
		c.tick++
		entry.atime = c.tick
		return entry.value
	}

	value := create()

	c.tick++
	c.entries[key] = &lruEntry[V]{value: value, atime: c.tick}

	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}

	return value
}

// clear removes all entries.
func (c *lruCache[K, V]) clear() {
	c.entries = make(map[K]*lruEntry[V])
	c.tick = 0
}

// len returns the number of entries.
func (c *lruCache[K, V]) len() int {
	return len(c.entries)
}

// evictOldest removes the least recently used entries until the cache
// is at 75% of the soft limit.
func (c *lruCache[K, V]) evictOldest() {
	targetSize := c.softLimit * 3 / 4
	if targetSize < 1 {
		targetSize = 1
	}

	toEvict := len(c.entries) - targetSize
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	entries := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		entries = append(entries, aged{key: key, atime: e.atime})
	}

	// Oldest first. Eviction is rare and the slice is small, so a
	// simple sort is fine.
	for i := 0; i < len(entries)-1; i++ {
		for j := 0; j < len(entries)-i-1; j++ {
			if entries[j].atime > entries[j+1].atime {
				entries[j], entries[j+1] = entries[j+1], entries[j]
			}
		}
	}

	for i := 0; i < toEvict && i < len(entries); i++ {
		delete(c.entries, entries[i].key)
	}
}
