package logger

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/pkg/ctxmeta"
	"go.uber.org/zap"
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

	loggerWrap := Wrap(logger, isProd)
	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// Wrap — ZapLogger поверх готового *zap.Logger (тесты, observer).
func Wrap(base *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{
		base:   base,
		sugar:  base.Sugar(),
		isProd: isProd,
	}
}

func (z *ZapLogger) Debugf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Debugf(format, args...)
}
func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Errorf(format, args...)
}

// withContext — добавляет к записи request_id, cart_id и trace_id, если они есть в контексте.
func (z *ZapLogger) withContext(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	fields := make([]any, 0, 6)
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", id)
	}
	if id, ok := ctxmeta.CartIDFromContext(ctx); ok {
		fields = append(fields, "cart_id", id)
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", id)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
