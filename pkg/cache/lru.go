// Package cache provides a size-bounded LRU cache.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultMaxSize is the default budget of an LRU cache (64 MB).
const DefaultMaxSize = 64 << 20

// bytesPerKB is the number of bytes in a kilobyte.
const bytesPerKB = 1024.0

// LRU is a thread-safe cache bounded by the total size of its entries. When
// full it evicts large, rarely used entries from the least recently used end.
type LRU[K comparable, V any] struct {
	mu          sync.RWMutex
	entries     map[K]*lruEntry[K, V]
	head        *lruEntry[K, V] // Most recently used.
	tail        *lruEntry[K, V] // Least recently used.
	maxSize     int64
	currentSize int64

	hits   atomic.Int64
	misses atomic.Int64
}

type lruEntry[K comparable, V any] struct {
	key         K
	value       V
	size        int64
	accessCount int64
	prev        *lruEntry[K, V]
	next        *lruEntry[K, V]
}

// evictionCost is accesses per KB; the lowest cost is evicted first.
func (e *lruEntry[K, V]) evictionCost() float64 {
	if e.size == 0 {
		return float64(e.accessCount)
	}

	sizeKB := float64(e.size) / bytesPerKB
	if sizeKB < 1 {
		sizeKB = 1
	}

	return float64(e.accessCount) / sizeKB
}

// NewLRU creates a cache holding at most maxSize bytes of entries.
// A non-positive maxSize means DefaultMaxSize.
func NewLRU[K comparable, V any](maxSize int64) *LRU[K, V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &LRU[K, V]{
		entries: make(map[K]*lruEntry[K, V]),
		maxSize: maxSize,
	}
}

// Get returns the value stored under key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		var zero V

		return zero, false
	}

	c.hits.Add(1)

	entry.accessCount++
	c.moveToFront(entry)

	return entry.value, true
}

// Put stores value under key, accounting size bytes for it. Values larger
// than the whole cache are not stored. An existing entry is replaced.
func (c *LRU[K, V]) Put(key K, value V, size int64) {
	if size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.removeFromList(entry)
		delete(c.entries, key)
		c.currentSize -= entry.size
	}

	for c.currentSize+size > c.maxSize && c.tail != nil {
		c.evictLowestCost()
	}

	entry := &lruEntry[K, V]{
		key:         key,
		value:       value,
		size:        size,
		accessCount: 1,
	}

	c.entries[key] = entry
	c.currentSize += size
	c.addToFront(entry)
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Entries:     len(c.entries),
		CurrentSize: c.currentSize,
		MaxSize:     c.maxSize,
	}
}

// Stats holds cache performance metrics.
type Stats struct {
	Hits        int64
	Misses      int64
	Entries     int
	CurrentSize int64
	MaxSize     int64
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}

	return float64(s.Hits) / float64(total)
}

func (c *LRU[K, V]) moveToFront(entry *lruEntry[K, V]) {
	if entry == c.head {
		return
	}

	c.removeFromList(entry)
	c.addToFront(entry)
}

func (c *LRU[K, V]) addToFront(entry *lruEntry[K, V]) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *LRU[K, V]) removeFromList(entry *lruEntry[K, V]) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}

	entry.prev = nil
	entry.next = nil
}

// evictionSampleSize is the number of tail candidates considered per eviction.
const evictionSampleSize = 5

// evictLowestCost removes the cheapest of the least recently used entries.
func (c *LRU[K, V]) evictLowestCost() {
	if c.tail == nil {
		return
	}

	victim := c.tail
	lowestCost := victim.evictionCost()

	entry := c.tail.prev
	for i := 1; entry != nil && i < evictionSampleSize; i++ {
		cost := entry.evictionCost()
		if cost < lowestCost {
			lowestCost = cost
			victim = entry
		}

		entry = entry.prev
	}

	c.removeFromList(victim)
	delete(c.entries, victim.key)
	c.currentSize -= victim.size
}
