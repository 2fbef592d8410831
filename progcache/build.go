package progcache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/clforge/cache"
	"github.com/jonwraymond/clforge/codegen"
	"github.com/jonwraymond/clforge/device"
	"github.com/jonwraymond/clforge/telemetry"
)

// build handles a verified cache miss. It releases the superseded kernel,
// ages out stale entries, then compiles under the global build lock with a
// re-check of the cache first. A failed build is terminal for this call;
// nothing is cached and no retry happens here.
func (s *Service) build(ctx context.Context, gctx *device.Context, v codegen.Variant, height uint64, prev device.Kernel, source, options, hash string) (p device.Program, err error) {
	if prev != nil {
		s.api.ReleaseKernel(prev)
	}

	stale := s.cache.EvictStale(v, height)
	for _, victim := range stale {
		s.api.ReleaseProgram(victim)
	}
	if len(stale) > 0 {
		s.metrics.RecordEviction(ctx, "stale", len(stale))
		s.log.Debug("evicted stale programs",
			zap.Int("count", len(stale)),
			zap.Stringer("variant", v),
			zap.Uint64("height", height))
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	// A concurrent caller may have compiled the identical artifact while
	// this one waited for the lock.
	if p, ok := s.cache.Lookup(v, height, gctx.Index, hash); ok {
		s.log.Debug("program compiled concurrently, reusing",
			zap.Stringer("variant", v),
			zap.Uint64("height", height),
			zap.Int("device", gctx.Index))
		return p, nil
	}

	info := telemetry.BuildInfo{Variant: v.String(), Height: height, Device: gctx.Index}
	ctx, span := s.tracer.StartBuild(ctx, info)
	start := time.Now()
	defer func() {
		s.metrics.RecordCompile(ctx, info, time.Since(start), err)
		s.tracer.EndBuild(span, err)
	}()

	p, st := s.api.CreateProgram(gctx, source)
	if st != device.Success {
		err = fmt.Errorf("create program for %s at height %d: %w", v, height, st)
		s.log.Error("program creation failed", zap.Int("device", gctx.Index), zap.Error(st))
		return nil, err
	}

	if st := s.api.BuildProgram(gctx, p, options); st != device.Success {
		s.api.ReleaseProgram(p)
		err = fmt.Errorf("build program for %s at height %d: %w", v, height, st)
		s.log.Error("program build failed",
			zap.Int("device", gctx.Index),
			zap.String("options", options),
			zap.Error(st))
		return nil, err
	}

	if st := s.api.WaitBuild(gctx, p); st != device.Success {
		s.api.ReleaseProgram(p)
		err = fmt.Errorf("wait for build of %s at height %d: %w", v, height, st)
		s.log.Error("program build wait failed", zap.Int("device", gctx.Index), zap.Error(st))
		return nil, err
	}

	s.cache.Insert(cache.Entry{
		Variant: v,
		Height:  height,
		Device:  gctx.Index,
		Hash:    hash,
		Program: p,
	})

	s.log.Info("program compiled",
		zap.Stringer("variant", v),
		zap.Uint64("height", height),
		zap.Int("device", gctx.Index),
		zap.Duration("elapsed", time.Since(start)))
	return p, nil
}
