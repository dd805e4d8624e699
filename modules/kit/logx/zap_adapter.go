package logx

import (
	"context"

	"LandKingdom/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 把 zap 适配为 Logger。
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l}
}

// ctxFields 是从 context 带入日志的关联字段。
var ctxFields = []struct {
	key string
	get func(context.Context) (string, bool)
}{
	{"trace_id", tracex.TraceIDFrom},
	{"span_id", tracex.SpanIDFrom},
	{"caller", tracex.CallerFrom},
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	if ctx == nil {
		return z
	}
	fields := make([]zap.Field, 0, len(ctxFields))
	for _, f := range ctxFields {
		if v, ok := f.get(ctx); ok {
			fields = append(fields, zap.String(f.key, v))
		}
	}
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{logger: z.logger.With(fields...)}
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field)  { z.logger.Info(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...zap.Field) { z.logger.Error(msg, fields...) }
func (z *ZapLogger) Debug(msg string, fields ...zap.Field) { z.logger.Debug(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...zap.Field)  { z.logger.Warn(msg, fields...) }
