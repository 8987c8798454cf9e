package oidcauth

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Tracer is a generic tracing interface for the middleware. StartSpan takes
// the request context and returns the context carrying the new span, so the
// verifier's own work (JWKS fetches, discovery) nests under it.
type Tracer interface {
	StartSpan(ctx context.Context, operation string, tags ...string) (context.Context, Span)
}

// Span is a single traced operation. Tags and fields come as alternating
// key/value pairs.
type Span interface {
	Finish()
	SetTag(key, value string)
	LogFields(fields ...string)
}

// NoopTracer is the default tracer and does nothing.
type NoopTracer struct{}

func (t *NoopTracer) StartSpan(ctx context.Context, operation string, tags ...string) (context.Context, Span) {
	return ctx, &NoopSpan{}
}

type NoopSpan struct{}

func (s *NoopSpan) Finish()                    {}
func (s *NoopSpan) SetTag(key, value string)   {}
func (s *NoopSpan) LogFields(fields ...string) {}

// OpenTelemetryTracer implements the Tracer interface using OpenTelemetry.
type OpenTelemetryTracer struct {
	tracer oteltrace.Tracer
}

func NewOpenTelemetryTracer(tracer oteltrace.Tracer) Tracer {
	return &OpenTelemetryTracer{tracer: tracer}
}

func (t *OpenTelemetryTracer) StartSpan(ctx context.Context, operation string, tags ...string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, operation, oteltrace.WithAttributes(pairAttributes(tags)...))
	return ctx, &OpenTelemetrySpan{span: span}
}

// OpenTelemetrySpan implements the Span interface using OpenTelemetry.
type OpenTelemetrySpan struct {
	span oteltrace.Span
}

func (s *OpenTelemetrySpan) Finish() {
	s.span.End()
}

func (s *OpenTelemetrySpan) SetTag(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

func (s *OpenTelemetrySpan) LogFields(fields ...string) {
	s.span.AddEvent("log", oteltrace.WithAttributes(pairAttributes(fields)...))
}

// pairAttributes folds alternating key/value pairs into string attributes;
// a trailing key without a value is dropped.
func pairAttributes(pairs []string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, attribute.String(pairs[i], pairs[i+1]))
	}
	return attrs
}
