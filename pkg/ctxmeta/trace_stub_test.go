//go:build !otel

package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
)

func TestTraceFromContext_NoOtelBuild(t *testing.T) {
	if tid, sid, ok := ctxmeta.TraceFromContext(context.Background()); ok || tid != "" || sid != "" {
		t.Fatalf("TraceFromContext => %q,%q,%v; want empty", tid, sid, ok)
	}
}
