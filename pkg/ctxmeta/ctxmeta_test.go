package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
)

func TestWithValues_PutAndGet(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	ctx = ctxmeta.WithPeerNode(ctx, "node-b")
	ctx = ctxmeta.WithFingerprint(ctx, "abc")

	if got, ok := ctxmeta.RequestIDFromContext(ctx); !ok || got != "req-123" {
		t.Fatalf("request id: ok=%v id=%q", ok, got)
	}
	if got, ok := ctxmeta.PeerNodeFromContext(ctx); !ok || got != "node-b" {
		t.Fatalf("peer node: ok=%v node=%q", ok, got)
	}
	if got, ok := ctxmeta.FingerprintFromContext(ctx); !ok || got != "abc" {
		t.Fatalf("fingerprint: ok=%v fp=%q", ok, got)
	}

	// Родитель не должен ничего содержать
	if _, ok := ctxmeta.RequestIDFromContext(parent); ok {
		t.Fatalf("parent context must not contain request_id")
	}
}

func TestWith_EmptyValue_NoChange(t *testing.T) {
	parent := context.Background()
	if ctxmeta.WithRequestID(parent, "") != parent || ctxmeta.WithFingerprint(parent, "") != parent {
		t.Fatalf("empty value must return the same ctx")
	}
}

func TestWith_NilCtx(t *testing.T) {
	var nilCtx context.Context
	if ctx := ctxmeta.WithPeerNode(nilCtx, "n"); ctx != nil {
		t.Fatalf("WithPeerNode(nil, ...) must return nil")
	}
	if id, ok := ctxmeta.RequestIDFromContext(nilCtx); ok || id != "" {
		t.Fatalf("RequestIDFromContext(nil) must be empty/false, got id=%q ok=%v", id, ok)
	}
}

func TestFromContext_EmptyStoredValue(t *testing.T) {
	// Даже если ключ верный, пустое значение считаем отсутствующим
	ctx := context.WithValue(context.Background(), ctxmeta.KeyRequestID, "")
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok || id != "" {
		t.Fatalf("empty stored value must be treated as absent, got id=%q ok=%v", id, ok)
	}
}

func TestFromContext_ForeignKeyIgnored(t *testing.T) {
	type otherKey struct{}
	ctx := context.WithValue(context.Background(), otherKey{}, "req-xyz")
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok || id != "" {
		t.Fatalf("foreign key must not be recognized, got id=%q ok=%v", id, ok)
	}
}

func TestFields(t *testing.T) {
	if f := ctxmeta.Fields(context.Background()); len(f) != 0 {
		t.Fatalf("empty ctx must give no fields, got %v", f)
	}

	ctx := ctxmeta.WithFingerprint(ctxmeta.WithRequestID(context.Background(), "r1"), "fp1")
	f := ctxmeta.Fields(ctx)
	want := []any{"request_id", "r1", "fingerprint", "fp1"}
	if len(f) < len(want) {
		t.Fatalf("fields=%v, want prefix %v", f, want)
	}
	for i := range want {
		if f[i] != want[i] {
			t.Fatalf("fields=%v, want prefix %v", f, want)
		}
	}
}
