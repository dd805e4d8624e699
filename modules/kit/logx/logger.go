package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各层共用的结构化日志接口；WithContext 把 trace/span/caller 带进字段。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

// Nop 返回丢弃一切输出的 Logger，供未注入日志的组件兜底。
func Nop() Logger {
	return NewZapLogger(nil)
}
