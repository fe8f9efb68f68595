package oteltrace

import (
	"context"

	"github.com/payforge/checkout/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New wraps the globally registered otel tracer in the observability.Tracer
// port. The host is responsible for installing a TracerProvider; without one
// the otel API no-ops, which is the desired fallback.
func New(name string) observability.Tracer {
	if name == "" {
		name = "checkout"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
