// Package device defines the contract between the forge and a device
// binding layer such as an OpenCL wrapper.
//
// The forge drives compilation exclusively through the API interface and
// treats program and kernel handles as opaque values: it stores them,
// compares them, and hands them back for release, nothing else. Real
// bindings live outside this module; the mock package provides a scriptable
// stand-in for tests.
package device
