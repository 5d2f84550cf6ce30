// Package trace starts the otel spans of the execution engine.
package trace

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zkrollup/pxe"

// Tracer starts engine spans on an otel tracer provider.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a tracer backed by provider.
func NewTracer(provider trace.TracerProvider) *Tracer {
	return &Tracer{
		tracer: provider.Tracer(instrumentationName),
	}
}

// StartSpanFromContext starts a span as a child of the span carried by ctx, if
// any, and returns the context carrying the new span.
func (t *Tracer) StartSpanFromContext(
	ctx context.Context,
	operationName SpanName,
	opts ...trace.SpanStartOption,
) (
	trace.Span,
	context.Context,
) {
	ctx, span := t.tracer.Start(ctx, string(operationName), opts...)
	return span, ctx
}

// StartSpanFromParent starts a child span of parentSpan.
func (t *Tracer) StartSpanFromParent(
	parentSpan trace.Span,
	operationName SpanName,
	opts ...trace.SpanStartOption,
) trace.Span {
	ctx := trace.ContextWithSpan(context.Background(), parentSpan)
	_, span := t.tracer.Start(ctx, string(operationName), opts...)
	return span
}

// WithSpanFromContext runs f within a span started from ctx.
func (t *Tracer) WithSpanFromContext(
	ctx context.Context,
	operationName SpanName,
	f func(),
	opts ...trace.SpanStartOption,
) {
	span, _ := t.StartSpanFromContext(ctx, operationName, opts...)
	defer span.End()

	f()
}
