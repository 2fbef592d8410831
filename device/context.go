package device

import (
	"fmt"
	"sync"
)

// Context carries the per-device state a caller owns: the raw device and
// compute-context handles passed through to the binding, the stable device
// index used as a cache key component, and the program currently bound to
// the device. A Context must not be copied once handed to the forge.
type Context struct {
	// Device is the opaque device handle.
	Device any

	// Compute is the opaque compute-context handle.
	Compute any

	// Index is the stable, small device index distinguishing cache entries
	// of otherwise identical devices.
	Index int

	// Program is the program currently bound to this context. It is
	// released during context teardown.
	Program Program

	mu       sync.Mutex
	identity string
}

// Identity returns the device identity string, computing it through the API
// on first use and caching it for the life of the context. A failed
// computation is not cached, so a later call retries.
//
// The computation runs under the context's own lock; api.DeviceIdentity
// must not call back into Identity.
func (c *Context) Identity(api API) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity != "" {
		return c.identity, nil
	}

	id, st := api.DeviceIdentity(c)
	if st != Success {
		return "", fmt.Errorf("device identity for device %d: %w", c.Index, st)
	}

	c.identity = id
	return id, nil
}
