// Package scheduler runs fire-and-forget jobs on a single background
// worker that drains its queue at a fixed cadence.
//
// The worker is started lazily by the first Schedule call and runs for the
// life of the process; there is no stop or join. Jobs execute in enqueue
// order. The scheduler never observes job results: a job that fails must do
// its own reporting.
package scheduler
