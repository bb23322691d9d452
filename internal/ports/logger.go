package ports

import "context"

// Logger - контракт логгера для всех слоёв (реализация: pkg/logger на zap).
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
