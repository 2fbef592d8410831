package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// BuildInfo identifies one compilation for telemetry purposes.
type BuildInfo struct {
	Variant string // Algorithm variant name (required)
	Height  uint64 // Height the program was generated for
	Device  int    // Target device index
}

// SpanName returns the deterministic span name for this build.
// Format: forge.compile.<variant>
func (b BuildInfo) SpanName() string {
	return "forge.compile." + b.Variant
}

// Tracer wraps OpenTelemetry tracing with build-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndBuild must be best-effort and must not panic.
type Tracer interface {
	// StartBuild starts a new span for a device compilation.
	StartBuild(ctx context.Context, info BuildInfo) (context.Context, trace.Span)

	// EndBuild ends the span, recording any error.
	EndBuild(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartBuild starts a new span with build metadata as attributes.
func (t *tracerImpl) StartBuild(ctx context.Context, info BuildInfo) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, info.SpanName(),
		trace.WithAttributes(
			attribute.String("forge.variant", info.Variant),
			attribute.Int64("forge.height", int64(info.Height)),
			attribute.Int("forge.device", info.Device),
			attribute.Bool("forge.error", false), // Will be updated in EndBuild if error
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, span
}

// EndBuild ends the span and records the error status if present.
func (t *tracerImpl) EndBuild(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("forge.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartBuild(ctx context.Context, info BuildInfo) (context.Context, trace.Span) {
	return t.noop.Start(ctx, info.SpanName())
}

func (t *noopTracer) EndBuild(span trace.Span, err error) {
	span.End()
}
