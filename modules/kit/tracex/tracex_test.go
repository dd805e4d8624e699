package tracex

import (
	"context"
	"testing"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithTraceID(ctx, "t-1")
	if got, ok := TraceIDFrom(ctx); !ok || got != "t-1" {
		t.Fatalf("期望 TraceIDFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
}

func TestCaller_RoundTrip(t *testing.T) {
	ctx := WithCaller(context.Background(), "0xabc")
	if got, ok := CallerFrom(ctx); !ok || got != "0xabc" {
		t.Fatalf("期望 CallerFrom round-trip 成功，got=%q ok=%v", got, ok)
	}
	if _, ok := CallerFrom(context.Background()); ok {
		t.Fatalf("空 ctx 不应取到 caller")
	}
}

func TestNewSpanID_长度(t *testing.T) {
	if got := NewSpanID(); len(got) != 16 {
		t.Fatalf("span_id 期望 16 个 hex 字符，got=%q", got)
	}
}

func TestFrom_空串视为缺失(t *testing.T) {
	ctx := WithSpanID(context.Background(), "")
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("空 span_id 不应视为已设置")
	}
	if len(NewTraceID()) != 32 {
		t.Fatalf("trace_id 期望 32 个 hex 字符")
	}
}
