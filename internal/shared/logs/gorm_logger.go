package logs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LandKingdom/modules/kit/logx"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"
)

// 快照整表写入的 SQL 很长，日志里只留前缀。
const maxSQLLen = 512

// GormLogger 把 GORM 日志接到 logx，慢查询记 WARN，执行失败记 ERROR。
type GormLogger struct {
	log   logx.Logger
	level glogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(l logx.Logger, level glogger.LogLevel, slow time.Duration) glogger.Interface {
	if l == nil {
		l = logx.Nop()
	}
	return &GormLogger{log: l, level: level, slow: slow}
}

func (g *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if g.level >= glogger.Info {
		g.log.WithContext(ctx).Info("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if g.level >= glogger.Warn {
		g.log.WithContext(ctx).Warn("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if g.level >= glogger.Error {
		g.log.WithContext(ctx).Error("gorm: " + fmt.Sprintf(msg, data...))
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= glogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	if len(sql) > maxSQLLen {
		sql = sql[:maxSQLLen] + "..."
	}
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	l := g.log.WithContext(ctx)
	switch {
	case err != nil && !errors.Is(err, glogger.ErrRecordNotFound):
		l.Error("gorm query failed", append(fields, zap.Error(err))...)
	case g.slow > 0 && elapsed > g.slow:
		l.Warn("gorm slow query", fields...)
	case g.level >= glogger.Info:
		l.Debug("gorm query", fields...)
	}
}
