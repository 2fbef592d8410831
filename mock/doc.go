// Package mock provides test doubles for the device API and the
// instruction generator.
//
// DeviceAPI records every call and delegates to overridable function
// fields, so tests can fault-inject any single device primitive while the
// rest keep their happy-path defaults.
package mock
