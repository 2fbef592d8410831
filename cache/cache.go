package cache

import (
	"sync"

	"github.com/jonwraymond/clforge/codegen"
	"github.com/jonwraymond/clforge/device"
)

// DefaultDepth is the retention window for height-based eviction. An entry
// is evictable once entry.Height + depth < the height of a newer build for
// the same variant.
const DefaultDepth = 3

// Entry is one successfully compiled program and the key that produced it.
// Hash digests the device identity, rendered source, and compile options, so
// it distinguishes builds that agree on variant, height, and device but
// differ in anything that determines the binary.
type Entry struct {
	Variant codegen.Variant
	Height  uint64
	Device  int
	Hash    string
	Program device.Program
}

// Stats is a point-in-time snapshot of cache occupancy.
type Stats struct {
	Entries  int
	ByDevice map[int]int
}

// Cache is a mutex-protected collection of compiled-program entries.
//
// Contract:
// - Concurrency: safe for concurrent use by any number of goroutines.
// - Locking: the internal mutex is held only for O(entries) scans and
//   splices, never across a device call. Eviction returns the removed
//   handles; releasing them is the caller's job, outside the lock.
// - Uniqueness: Insert does not deduplicate. Callers confirm absence via
//   Lookup under the build-serialization lock before inserting.
type Cache struct {
	mu      sync.Mutex
	depth   uint64
	entries []Entry
}

// New creates an empty cache with the given retention depth.
// depth=0 selects DefaultDepth.
func New(depth uint64) *Cache {
	if depth == 0 {
		depth = DefaultDepth
	}
	return &Cache{depth: depth}
}

// Lookup returns the program matching the full key, or (nil, false).
// Linear scan; the cache stays small enough that an index is not worth it.
func (c *Cache) Lookup(v codegen.Variant, height uint64, dev int, hash string) (device.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		e := &c.entries[i]
		if e.Variant == v && e.Height == height && e.Device == dev && e.Hash == hash {
			return e.Program, true
		}
	}
	return nil, false
}

// Insert appends an entry. See the uniqueness contract on Cache.
func (c *Cache) Insert(e Entry) {
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()
}

// EvictDevice removes every entry owned by the given device index and
// returns their program handles for release outside the lock.
func (c *Cache) EvictDevice(dev int) []device.Program {
	return c.collect(func(e Entry) bool {
		return e.Device == dev
	})
}

// EvictStale removes every entry of the given variant that has aged out of
// the retention window relative to height, returning the handles for
// release outside the lock. Entries with Height+depth >= height survive.
func (c *Cache) EvictStale(v codegen.Variant, height uint64) []device.Program {
	depth := c.depth
	return c.collect(func(e Entry) bool {
		return e.Variant == v && e.Height+depth < height
	})
}

// collect removes all matching entries with swap-with-last-and-pop (order
// is not significant) and returns their handles.
func (c *Cache) collect(match func(Entry) bool) []device.Program {
	c.mu.Lock()
	defer c.mu.Unlock()

	var victims []device.Program
	for i := 0; i < len(c.entries); {
		if !match(c.entries[i]) {
			i++
			continue
		}
		victims = append(victims, c.entries[i].Program)
		last := len(c.entries) - 1
		c.entries[i] = c.entries[last]
		c.entries[last] = Entry{} // do not pin the moved handle
		c.entries = c.entries[:last]
	}
	return victims
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Depth reports the retention window.
func (c *Cache) Depth() uint64 {
	return c.depth
}

// Snapshot returns current occupancy counts, overall and per device.
func (c *Cache) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Entries:  len(c.entries),
		ByDevice: make(map[int]int),
	}
	for i := range c.entries {
		s.ByDevice[c.entries[i].Device]++
	}
	return s
}
