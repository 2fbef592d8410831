// Package telemetry wires OpenTelemetry tracing and metrics for the
// compile cache.
//
// An Observer owns the provider lifecycle; Metrics and Tracer are the
// recording surfaces the service layer calls. Every constructor has a no-op
// counterpart so telemetry stays optional.
package telemetry
