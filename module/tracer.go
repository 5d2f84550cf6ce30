package module

import (
	"context"

	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/zkrollup/pxe/module/trace"
)

var (
	_ Tracer = &trace.Tracer{}
	_ Tracer = &trace.NoopTracer{}
)

// Tracer starts the spans of the execution engine. Uses otel span definitions.
type Tracer interface {
	// StartSpanFromContext starts a span as a child of the span carried by
	// ctx. It also returns the context including this span which can be used
	// for nested calls.
	StartSpanFromContext(
		ctx context.Context,
		operationName trace.SpanName,
		opts ...otelTrace.SpanStartOption,
	) (
		otelTrace.Span,
		context.Context,
	)

	// StartSpanFromParent starts a child of parentSpan.
	StartSpanFromParent(
		parentSpan otelTrace.Span,
		operationName trace.SpanName,
		opts ...otelTrace.SpanStartOption,
	) otelTrace.Span

	// WithSpanFromContext runs f inside a span started from ctx.
	WithSpanFromContext(
		ctx context.Context,
		operationName trace.SpanName,
		f func(),
		opts ...otelTrace.SpanStartOption,
	)
}
