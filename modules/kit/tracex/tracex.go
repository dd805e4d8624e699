// Package tracex 在 context 中携带请求关联信息：trace/span 与调用方钱包地址。
package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type key uint8

const (
	traceIDKey key = iota
	spanIDKey
	callerKey
)

func with(ctx context.Context, k key, v string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, k, v)
}

// from 只认非空字符串。
func from(ctx context.Context, k key) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(k).(string)
	return s, ok && s != ""
}

func WithTraceID(ctx context.Context, id string) context.Context { return with(ctx, traceIDKey, id) }
func TraceIDFrom(ctx context.Context) (string, bool)             { return from(ctx, traceIDKey) }

func WithSpanID(ctx context.Context, id string) context.Context { return with(ctx, spanIDKey, id) }
func SpanIDFrom(ctx context.Context) (string, bool)             { return from(ctx, spanIDKey) }

// WithCaller 记录本次请求的调用方地址（0x 十六进制），用于日志关联。
func WithCaller(ctx context.Context, addr string) context.Context { return with(ctx, callerKey, addr) }
func CallerFrom(ctx context.Context) (string, bool)               { return from(ctx, callerKey) }

// NewTraceID 生成 16 字节随机 hex。
func NewTraceID() string { return randomHex(16) }

// NewSpanID 生成 8 字节随机 hex。
func NewSpanID() string { return randomHex(8) }

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
