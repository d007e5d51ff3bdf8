package transport

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/oway-inc/oway-go/transport"

// startSpan opens a client span for one logical request. The tracer comes
// from the global provider; applications that install none get no-op spans.
func startSpan(ctx context.Context, method, path string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
}

// endSpan records the outcome and closes the span.
func endSpan(span trace.Span, status, attempts int, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	span.SetAttributes(attribute.Int("oway.request.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
