// Package tracing defines a minimal tracer abstraction so domain code can
// record spans without depending on OpenTelemetry APIs directly.
package tracing

import "context"

// Attribute is a key/value pair attached to a span.
type Attribute struct {
	Key   string
	Value string
}

// Span represents one in-flight traced operation.
type Span interface {
	// End completes the span, recording err if non-nil.
	End(err error)
}

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Noop returns a tracer that records nothing. Useful as a default and in tests.
func Noop() Tracer {
	return noopTracer{}
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}
