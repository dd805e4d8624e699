package transport

import (
	"context"
	"time"

	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/logx"
	"LandKingdom/modules/kit/tracex"

	"go.uber.org/zap"
)

// AccessLog 记录一次 HTTP 请求或 WS 消息的结果，出口处统一落一条访问日志。
type AccessLog struct {
	BizCode BizCode
	// Reason 是稳定错误码（如 OnlyOwner），Detail 是完整错误文本。
	Reason string
	Detail string

	action string
	start  time.Time
}

type accessLogKey struct{}

// NewContext 以 background 为父 context，供 WS 消息使用。
func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent 挂上 AccessLog，并补齐 trace/span。
func NewContextWithParent(parent context.Context, action string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	if _, ok := tracex.TraceIDFrom(ctx); !ok {
		ctx = tracex.WithTraceID(ctx, tracex.NewTraceID())
	}
	ctx = tracex.WithSpanID(ctx, tracex.NewSpanID())

	// 未显式设置时按系统错误记，避免漏设变成成功。
	al := &AccessLog{BizCode: BizCode(SystemError), action: action, start: time.Now()}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

// SetReason 只在首次设置时生效，handler 写入的原因优先于中间件从响应体解析的。
func SetReason(ctx context.Context, reason string) {
	if al := FromContext(ctx); al != nil && al.Reason == "" {
		al.Reason = reason
	}
}

// SetError 按错误分类写入业务码、错误码与原文。
func SetError(ctx context.Context, err error) {
	al := FromContext(ctx)
	if al == nil || err == nil {
		return
	}
	al.BizCode = BizCodeOf(err)
	if al.Reason == "" {
		al.Reason = string(errx.CodeOf(err))
	}
	al.Detail = err.Error()
}

// WriteAccessLog 输出访问日志，出口处调用一次。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	fields := []zap.Field{zap.Duration("latency", time.Since(al.start))}
	if al.BizCode == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.Reason != "" {
			fields = append(fields, zap.String("reason", al.Reason))
		}
		if al.Detail != "" {
			fields = append(fields, zap.String("detail", al.Detail))
		}
	}
	logx.ReportAccess(ctx, log, al.action, int(al.BizCode), fields...)
}
