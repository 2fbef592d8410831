// Package progcache compiles device programs from generated source and
// caches the results.
//
// A Service is the facade over the whole pipeline: it renders the
// instruction sequence for a (variant, height) pair into the kernel
// template, hashes everything that determines the binary, and answers from
// the program cache whenever it can. Cache misses funnel through a single
// global build lock with a double-checked lookup, so at most one physical
// compile happens per distinct artifact no matter how many goroutines ask
// for it. Background requests are queued on a lazily started worker and
// return immediately; a later foreground request observes the cache.
package progcache
