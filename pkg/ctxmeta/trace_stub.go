//go:build !otel || gopls

package ctxmeta

import "context"

// TraceFromContext — без тега otel идентификаторы в логи не попадают.
func TraceFromContext(context.Context) (traceID, spanID string, ok bool) { return "", "", false }
