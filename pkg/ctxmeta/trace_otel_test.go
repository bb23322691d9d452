//go:build otel

package ctxmeta_test

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
)

func TestTraceFromContext_Otel(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "LookupPart")
	defer span.End()

	traceID, spanID, ok := ctxmeta.TraceFromContext(ctx)
	if !ok {
		t.Fatalf("TraceFromContext must return ok=true in otel build")
	}
	if traceID != span.SpanContext().TraceID().String() || spanID != span.SpanContext().SpanID().String() {
		t.Fatalf("ids mismatch: %s/%s", traceID, spanID)
	}

	if _, _, ok := ctxmeta.TraceFromContext(context.Background()); ok {
		t.Fatalf("no span in ctx must give ok=false")
	}
}
