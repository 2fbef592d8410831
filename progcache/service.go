package progcache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/jonwraymond/clforge/cache"
	"github.com/jonwraymond/clforge/codegen"
	"github.com/jonwraymond/clforge/device"
	"github.com/jonwraymond/clforge/scheduler"
	"github.com/jonwraymond/clforge/telemetry"
)

// BaseOptions produces the device- and variant-specific compile options the
// variant selector flags are appended to. Defined by the embedding
// application; the default returns "".
type BaseOptions func(v codegen.Variant, gctx *device.Context) string

// Service is the compile-cache facade. One Service owns one cache, one
// background worker, and one build-serialization lock; construct it once
// and share it across all device contexts.
type Service struct {
	cfg   Config
	api   device.API
	gen   codegen.Generator
	base  BaseOptions
	cache *cache.Cache
	sched *scheduler.Scheduler

	// buildMu serializes device compilation. Device compilers are not
	// reliably safe to drive from several threads at once, and serializing
	// also keeps concurrent requests for one artifact down to a single
	// physical compile.
	buildMu sync.Mutex

	log     *zap.Logger
	metrics telemetry.Metrics
	tracer  telemetry.Tracer

	obs telemetry.Observer
	clk clock.Clock
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBaseOptions sets the base compile-options builder.
func WithBaseOptions(base BaseOptions) Option {
	return func(s *Service) {
		if base != nil {
			s.base = base
		}
	}
}

// WithClock substitutes the background worker's clock, letting tests drive
// its cadence.
func WithClock(clk clock.Clock) Option {
	return func(s *Service) {
		s.clk = clk
	}
}

// WithObserver wires tracing and metrics through the given observer.
// Default: no-op telemetry.
func WithObserver(obs telemetry.Observer) Option {
	return func(s *Service) {
		s.obs = obs
	}
}

// New creates a Service over the given device API and instruction
// generator.
func New(cfg Config, api device.API, gen codegen.Generator, opts ...Option) (*Service, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	if gen == nil {
		return nil, ErrNilGenerator
	}

	if cfg.Marker == "" {
		cfg.Marker = codegen.DefaultMarker
	}

	s := &Service{
		cfg:     cfg,
		api:     api,
		gen:     gen,
		base:    func(codegen.Variant, *device.Context) string { return "" },
		log:     zap.NewNop(),
		metrics: telemetry.NewNoopMetrics(),
		tracer:  telemetry.NewNoopTracer(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.obs != nil {
		m, err := telemetry.NewMetrics(s.obs.Meter())
		if err != nil {
			return nil, fmt.Errorf("progcache: create metrics: %w", err)
		}
		s.metrics = m
		s.tracer = telemetry.NewTracer(s.obs.Tracer())
	}

	s.cache = cache.New(cfg.PrecompileDepth)

	sopts := []scheduler.Option{
		scheduler.WithInterval(cfg.PollInterval),
		scheduler.WithLogger(s.log),
	}
	if s.clk != nil {
		sopts = append(sopts, scheduler.WithClock(s.clk))
	}
	s.sched = scheduler.New(sopts...)

	return s, nil
}

// GetProgram returns the compiled program for (variant, height) on gctx's
// device, compiling on a verified cache miss.
//
// With background set, the same work is queued on the background worker and
// the call returns (nil, nil) immediately; the result is not ready yet, and
// a later foreground call retrieves it from the cache. prev, when non-nil,
// is a kernel handle the caller is superseding; it is released before any
// new compilation and must not be in use by any other goroutine.
func (s *Service) GetProgram(ctx context.Context, gctx *device.Context, v codegen.Variant, height uint64, background bool, prev device.Kernel) (device.Program, error) {
	if gctx == nil {
		return nil, ErrNilContext
	}

	if background {
		// The job must outlive the caller's request context.
		jobCtx := context.WithoutCancel(ctx)
		s.sched.Schedule(func() {
			if _, err := s.GetProgram(jobCtx, gctx, v, height, false, prev); err != nil {
				s.log.Warn("background build failed",
					zap.Stringer("variant", v),
					zap.Uint64("height", height),
					zap.Int("device", gctx.Index),
					zap.Error(err))
			}
		})
		s.metrics.RecordJob(ctx)
		return nil, nil
	}

	// A malformed template is a configuration error; nothing touches the
	// device until it passes.
	at := strings.Index(s.cfg.Template, s.cfg.Marker)
	if at < 0 {
		s.log.Error("insertion marker not found in source template", zap.String("marker", s.cfg.Marker))
		return nil, ErrMissingMarker
	}

	ops, err := s.gen(v, height)
	if err != nil {
		s.log.Error("instruction generation failed",
			zap.Stringer("variant", v),
			zap.Uint64("height", height),
			zap.Error(err))
		return nil, fmt.Errorf("generate instructions for %s at height %d: %w", v, height, err)
	}

	body := codegen.Render(ops)
	source := s.cfg.Template[:at] + body + s.cfg.Template[at+len(s.cfg.Marker):]

	options := s.base(v, gctx) + codegen.VariantFlag(v) + codegen.WideMathFlag(v)

	identity, err := gctx.Identity(s.api)
	if err != nil {
		s.log.Error("device identity lookup failed", zap.Int("device", gctx.Index), zap.Error(err))
		return nil, err
	}

	hash := ContentHash(identity, source, options)

	if p, ok := s.cache.Lookup(v, height, gctx.Index, hash); ok {
		s.metrics.RecordLookup(ctx, true)
		s.log.Debug("program cache hit",
			zap.Stringer("variant", v),
			zap.Uint64("height", height),
			zap.Int("device", gctx.Index))
		return p, nil
	}
	s.metrics.RecordLookup(ctx, false)

	return s.build(ctx, gctx, v, height, prev, source, options, hash)
}

// OnContextRelease tears down everything the cache holds for gctx's device:
// the context's bound program, then every cache entry owned by the device
// index. Call it before destroying the context. Releases have no failure
// path, so neither does this.
func (s *Service) OnContextRelease(ctx context.Context, gctx *device.Context) {
	if gctx == nil {
		return
	}

	if gctx.Program != nil {
		s.api.ReleaseProgram(gctx.Program)
		gctx.Program = nil
	}

	victims := s.cache.EvictDevice(gctx.Index)
	for _, p := range victims {
		s.api.ReleaseProgram(p)
	}
	if len(victims) > 0 {
		s.metrics.RecordEviction(ctx, "device", len(victims))
	}
	s.log.Info("device cache purged", zap.Int("device", gctx.Index), zap.Int("evicted", len(victims)))
}

// Stats reports current cache occupancy.
func (s *Service) Stats() cache.Stats {
	return s.cache.Snapshot()
}

// PendingJobs reports how many background jobs await the next worker drain.
func (s *Service) PendingJobs() int {
	return s.sched.Pending()
}
