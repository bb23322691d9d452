// Пакет ctxmeta - метаданные запроса в context.Context: request_id, узел-отправитель Swarm,
// fingerprint текущего поиска. HTTP-слой, координатор и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

// Ключи контекста (неэкспортируемый тип - чтобы избежать коллизий).
const (
	KeyRequestID   ctxKey = "request_id"
	KeyPeerNode    ctxKey = "peer_node"
	KeyFingerprint ctxKey = "fingerprint"
)

// Заголовки, которыми метаданные ходят между клиентом и узлами.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderPeerNode  = "X-Swarm-Node"
)

func with(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func get(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID кладёт request_id в контекст (если пусто - ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, KeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyRequestID) }

// WithPeerNode — запрос пришёл от другого узла Swarm.
func WithPeerNode(ctx context.Context, node string) context.Context {
	return with(ctx, KeyPeerNode, node)
}

func PeerNodeFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyPeerNode) }

// WithFingerprint — ключ кэша текущего поиска.
func WithFingerprint(ctx context.Context, fp string) context.Context {
	return with(ctx, KeyFingerprint, fp)
}

func FingerprintFromContext(ctx context.Context) (string, bool) { return get(ctx, KeyFingerprint) }

// Fields — пары ключ/значение для структурного лога (только присутствующие).
func Fields(ctx context.Context) []any {
	var out []any
	for _, k := range []ctxKey{KeyRequestID, KeyPeerNode, KeyFingerprint} {
		if v, ok := get(ctx, k); ok {
			out = append(out, string(k), v)
		}
	}
	if tid, _, ok := TraceFromContext(ctx); ok {
		out = append(out, "trace_id", tid)
	}
	return out
}
