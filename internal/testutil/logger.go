package testutil

import "context"

// NoopLogger — логгер-заглушка для тестов.
type NoopLogger struct{}

func (NoopLogger) Debugf(context.Context, string, ...any) {}
func (NoopLogger) Infof(context.Context, string, ...any)  {}
func (NoopLogger) Warnf(context.Context, string, ...any)  {}
func (NoopLogger) Errorf(context.Context, string, ...any) {}
