package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/prospect/business"
)

// tracerName is the instrumentation scope name for prospect tracing.
const tracerName = "github.com/xraph/prospect"

// Tracing returns middleware that wraps each transition in an OpenTelemetry
// span using the global TracerProvider.
//
// Span attributes: prospect.fein, prospect.status.from, prospect.version,
// and prospect.status.to on success.
func Tracing() Middleware {
	return TracingWithTracer(otel.Tracer(tracerName))
}

// TracingWithTracer returns tracing middleware using the provided tracer.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, b *business.Business, next Handler) error {
		ctx, span := tracer.Start(ctx, "prospect.business.progress",
			trace.WithAttributes(
				attribute.String("prospect.fein", b.FEIN),
				attribute.String("prospect.status.from", string(b.Status)),
				attribute.Int64("prospect.version", b.Version),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("prospect.status.to", string(b.Status)))
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
