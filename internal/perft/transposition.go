package perft

import (
	"sync"
	"sync/atomic"
)

// Number of shards for cache locking (power of 2 for fast modulo)
const cacheShardCount = 256
const cacheShardMask = cacheShardCount - 1

// cacheEntry holds the node count below one position at one depth.
type cacheEntry struct {
	Key   uint64 // Full 64-bit Zobrist hash for verification
	Nodes uint64 // Leaf count below the position
	Depth uint8  // Remaining depth the count was taken at
}

// Cache is a fixed-size table of subtree node counts keyed by position hash
// and remaining depth. Safe for concurrent use by many workers.
type Cache struct {
	entries []cacheEntry
	shards  [cacheShardCount]sync.RWMutex
	size    uint64
	mask    uint64

	// Statistics (atomic for thread-safety)
	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewCache creates a cache with the given size in MB.
func NewCache(sizeMB int) *Cache {
	entrySize := uint64(24)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries < 1 {
		numEntries = 1
	}

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &Cache{
		entries: make([]cacheEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// index mixes the depth into the slot so that one position can hold counts
// for several depths at once.
func (c *Cache) index(hash uint64, depth int) uint64 {
	return (hash ^ uint64(depth)*0x9E3779B97F4A7C15) & c.mask
}

// Probe returns the stored count for (hash, depth), if any.
func (c *Cache) Probe(hash uint64, depth int) (uint64, bool) {
	c.probes.Add(1)

	idx := c.index(hash, depth)
	shard := idx & cacheShardMask

	c.shards[shard].RLock()
	entry := c.entries[idx]
	c.shards[shard].RUnlock()

	if entry.Key == hash && int(entry.Depth) == depth && entry.Depth > 0 {
		c.hits.Add(1)
		return entry.Nodes, true
	}
	return 0, false
}

// Store records the count for (hash, depth). Deeper entries are kept over
// shallower ones that land in the same slot, since they save more work.
func (c *Cache) Store(hash uint64, depth int, nodes uint64) {
	if depth <= 0 || depth > 255 {
		return
	}
	idx := c.index(hash, depth)
	shard := idx & cacheShardMask

	c.shards[shard].Lock()
	entry := &c.entries[idx]
	if entry.Key == hash || depth >= int(entry.Depth) {
		entry.Key = hash
		entry.Nodes = nodes
		entry.Depth = uint8(depth)
	}
	c.shards[shard].Unlock()
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	for i := range c.shards {
		c.shards[i].Lock()
	}
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
	for i := range c.shards {
		c.shards[i].Unlock()
	}
	c.hits.Store(0)
	c.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	probes := c.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(c.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the cache.
func (c *Cache) Size() uint64 {
	return c.size
}
