package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/partswarm/pkg/ctxmeta"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := wrap(logger, isProd)
	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// NewFromZap — обёртка над готовым *zap.Logger (тесты, zaptest/observer).
func NewFromZap(l *zap.Logger) *ZapLogger { return wrap(l, false) }

func wrap(l *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{base: l, sugar: l.Sugar(), isProd: isProd}
}

// With — логгер с постоянными полями (например, node_id).
func (z *ZapLogger) With(args ...any) *ZapLogger {
	s := z.sugar.With(args...)
	return &ZapLogger{base: s.Desugar(), sugar: s, isProd: z.isProd}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.fromContext(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.fromContext(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.fromContext(ctx).Errorf(format, args...)
}

// fromContext — поля запроса из ctxmeta (request_id, peer_node, fingerprint, trace_id).
func (z *ZapLogger) fromContext(ctx context.Context) *zap.SugaredLogger {
	fields := ctxmeta.Fields(ctx)
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
