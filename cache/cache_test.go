package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jonwraymond/clforge/codegen"
	"github.com/jonwraymond/clforge/device"
)

func TestNew_DefaultDepth(t *testing.T) {
	if got := New(0).Depth(); got != DefaultDepth {
		t.Errorf("New(0).Depth() = %d, want %d", got, DefaultDepth)
	}
	if got := New(7).Depth(); got != 7 {
		t.Errorf("New(7).Depth() = %d, want 7", got)
	}
}

func TestCache_LookupInsert(t *testing.T) {
	c := New(0)

	if _, ok := c.Lookup(codegen.VariantR, 1000, 0, "h1"); ok {
		t.Fatal("lookup on empty cache reported a hit")
	}

	c.Insert(Entry{Variant: codegen.VariantR, Height: 1000, Device: 0, Hash: "h1", Program: "prog-1"})

	got, ok := c.Lookup(codegen.VariantR, 1000, 0, "h1")
	if !ok {
		t.Fatal("lookup missed an inserted entry")
	}
	if got != device.Program("prog-1") {
		t.Errorf("lookup returned %v, want prog-1", got)
	}

	// Every component of the key participates in the match.
	misses := []struct {
		name    string
		variant codegen.Variant
		height  uint64
		dev     int
		hash    string
	}{
		{"variant", codegen.VariantWow, 1000, 0, "h1"},
		{"height", codegen.VariantR, 1001, 0, "h1"},
		{"device", codegen.VariantR, 1000, 1, "h1"},
		{"hash", codegen.VariantR, 1000, 0, "h2"},
	}
	for _, m := range misses {
		if _, ok := c.Lookup(m.variant, m.height, m.dev, m.hash); ok {
			t.Errorf("lookup with differing %s reported a hit", m.name)
		}
	}
}

func TestCache_EvictDevice(t *testing.T) {
	c := New(0)
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1000, Device: 0, Hash: "a", Program: "dev0-a"})
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1001, Device: 0, Hash: "b", Program: "dev0-b"})
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1000, Device: 1, Hash: "c", Program: "dev1-c"})

	victims := c.EvictDevice(0)
	if len(victims) != 2 {
		t.Fatalf("EvictDevice(0) returned %d handles, want 2", len(victims))
	}
	seen := map[device.Program]bool{}
	for _, p := range victims {
		seen[p] = true
	}
	if !seen["dev0-a"] || !seen["dev0-b"] {
		t.Errorf("EvictDevice(0) returned %v, want dev0-a and dev0-b", victims)
	}

	// Other devices are unaffected.
	if _, ok := c.Lookup(codegen.VariantR, 1000, 1, "c"); !ok {
		t.Error("entry for device 1 was evicted")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after eviction, want 1", c.Len())
	}

	// Idempotent on an already-clean device.
	if victims := c.EvictDevice(0); len(victims) != 0 {
		t.Errorf("second EvictDevice(0) returned %d handles, want 0", len(victims))
	}
}

func TestCache_EvictStale_WindowBoundary(t *testing.T) {
	const depth = 3
	c := New(depth)

	// 1000+3 < 1004 is stale; 1001+3 == 1004 is the oldest survivor.
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1000, Device: 0, Hash: "a", Program: "old"})
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1001, Device: 0, Hash: "b", Program: "edge"})
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1004, Device: 0, Hash: "c", Program: "new"})

	victims := c.EvictStale(codegen.VariantR, 1004)
	if len(victims) != 1 || victims[0] != device.Program("old") {
		t.Fatalf("EvictStale returned %v, want exactly [old]", victims)
	}

	if _, ok := c.Lookup(codegen.VariantR, 1001, 0, "b"); !ok {
		t.Error("entry at the window boundary was evicted")
	}
	if _, ok := c.Lookup(codegen.VariantR, 1004, 0, "c"); !ok {
		t.Error("current-height entry was evicted")
	}
}

func TestCache_EvictStale_VariantIsolation(t *testing.T) {
	c := New(3)
	c.Insert(Entry{Variant: codegen.VariantR, Height: 100, Device: 0, Hash: "a", Program: "r-old"})
	c.Insert(Entry{Variant: codegen.VariantWow, Height: 100, Device: 0, Hash: "b", Program: "wow-old"})

	victims := c.EvictStale(codegen.VariantR, 9000)
	if len(victims) != 1 || victims[0] != device.Program("r-old") {
		t.Fatalf("EvictStale returned %v, want exactly [r-old]", victims)
	}
	if _, ok := c.Lookup(codegen.VariantWow, 100, 0, "b"); !ok {
		t.Error("entry of an unrelated variant was evicted")
	}
}

func TestCache_Snapshot(t *testing.T) {
	c := New(0)
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1, Device: 0, Hash: "a", Program: "p0"})
	c.Insert(Entry{Variant: codegen.VariantR, Height: 2, Device: 0, Hash: "b", Program: "p1"})
	c.Insert(Entry{Variant: codegen.VariantR, Height: 1, Device: 2, Hash: "c", Program: "p2"})

	s := c.Snapshot()
	if s.Entries != 3 {
		t.Errorf("Snapshot().Entries = %d, want 3", s.Entries)
	}
	if s.ByDevice[0] != 2 || s.ByDevice[2] != 1 {
		t.Errorf("Snapshot().ByDevice = %v, want map[0:2 2:1]", s.ByDevice)
	}
}

// TestCache_ConcurrentAccess hammers all operations from many goroutines.
// Correctness here is the race detector's job; the final count just sanity
// checks that inserts and evictions both happened.
func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(3)
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := uint64(i)
				hash := fmt.Sprintf("%d-%d", g, i)
				c.Insert(Entry{Variant: codegen.VariantR, Height: h, Device: g, Hash: hash, Program: hash})
				c.Lookup(codegen.VariantR, h, g, hash)
				if i%10 == 0 {
					c.EvictStale(codegen.VariantR, h)
				}
			}
		}(g)
	}
	wg.Wait()

	for g := 0; g < 8; g++ {
		c.EvictDevice(g)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after evicting every device, want 0", c.Len())
	}
}
