// Package cache stores compiled device programs keyed by variant, height,
// device index, and content hash.
//
// It provides a mutex-protected entry collection with linear-scan lookup and
// two eviction policies: by owning device, and by height staleness within a
// retention window. Eviction returns the removed program handles so callers
// can release them outside the cache lock.
package cache
