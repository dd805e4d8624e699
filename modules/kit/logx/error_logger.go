package logx

import (
	"context"
	"fmt"
	"strings"

	"LandKingdom/modules/kit/errx"

	"go.uber.org/zap"
)

// ReportAccess 记录一次请求：业务码 0 记 INFO，5xx 记 ERROR，其余记 WARN。
func ReportAccess(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := append([]zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)

	withCtx := l.WithContext(ctx)
	switch {
	case bizCode == 0:
		withCtx.Info("access", base...)
	case bizCode >= 500:
		withCtx.Error("access", base...)
	default:
		withCtx.Warn("access", base...)
	}
}

// ReportError 按错误分类分派：system 记 ERROR 并附带 cause 链与发生处栈；
// 其余（校验/权限/状态/资金/签名）是业务拒绝，记 INFO 不带栈。
func ReportError(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if err == nil || l == nil {
		return
	}
	meta := BuildErrorLog(err)
	if errx.CategoryOf(err) == errx.CategorySystem {
		reportSys(ctx, l, action, meta, fields)
		return
	}
	reportBiz(ctx, l, action, meta, fields)
}

func reportBiz(ctx context.Context, l Logger, action string, meta ErrorLog, fields []zap.Field) {
	if action == "" {
		action = "biz_reject"
	}
	base := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String("action", action),
		zap.String("category", meta.Category),
	}
	if meta.Code != "" {
		base = append(base, zap.String("reason", meta.Code))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	l.WithContext(ctx).Info(summary(action, meta.Code, meta.Msg), append(base, fields...)...)
}

func reportSys(ctx context.Context, l Logger, action string, meta ErrorLog, fields []zap.Field) {
	if action == "" {
		action = "sys_error"
	}
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
	}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin))
	}
	if meta.Stack != "" {
		base = append(base, zap.String("stack_origin", meta.Stack))
	}
	l.WithContext(ctx).Error(summary(action, meta.Code, meta.Error), append(base, fields...)...)
}

// summary 拼出 "action, reason:x, msg:y"，空段省略。
func summary(action, reason, msg string) string {
	var b strings.Builder
	b.WriteString(action)
	if reason != "" {
		fmt.Fprintf(&b, ", reason:%s", reason)
	}
	if msg != "" {
		fmt.Fprintf(&b, ", msg:%s", msg)
	}
	return b.String()
}
