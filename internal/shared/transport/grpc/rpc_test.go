package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"LandKingdom/modules/kit/tracex"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

func TestCheckHealth_状态切换(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	srv, hs := NewServer(nil)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status, err := CheckHealth(ctx, lis.Addr().String())
	if err != nil || status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("启动前期望 NOT_SERVING，得到 %v err=%v", status, err)
	}
	hs.SetServingStatus(KingdomService, healthpb.HealthCheckResponse_SERVING)
	status, err = CheckHealth(ctx, lis.Addr().String())
	if err != nil || status != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("期望 SERVING，得到 %v err=%v", status, err)
	}
}

func TestIncoming_从元数据取上下文(t *testing.T) {
	md := metadata.Pairs("x-trace-id", "abc", "x-span-id", "def", "x-caller", "0xabc")
	ctx := incoming(metadata.NewIncomingContext(context.Background(), md))
	if id, _ := tracex.TraceIDFrom(ctx); id != "abc" {
		t.Fatalf("期望 trace_id=abc，得到 %q", id)
	}
	if id, _ := tracex.SpanIDFrom(ctx); id != "def" {
		t.Fatalf("期望 span_id=def，得到 %q", id)
	}
	if c, _ := tracex.CallerFrom(ctx); c != "0xabc" {
		t.Fatalf("期望 caller=0xabc，得到 %q", c)
	}
}

func TestIncoming_无元数据时补齐trace(t *testing.T) {
	ctx := incoming(context.Background())
	if id, ok := tracex.TraceIDFrom(ctx); !ok || id == "" {
		t.Fatalf("应生成 trace_id")
	}
	if id, ok := tracex.SpanIDFrom(ctx); !ok || id == "" {
		t.Fatalf("应生成 span_id")
	}
}

func TestOutgoing_写入元数据(t *testing.T) {
	ctx := tracex.WithCaller(tracex.WithTraceID(context.Background(), "t1"), "0xdef")
	md, _ := metadata.FromOutgoingContext(outgoing(ctx))
	if got := md.Get("x-trace-id"); len(got) != 1 || got[0] != "t1" {
		t.Fatalf("x-trace-id=%v", got)
	}
	if got := md.Get("x-caller"); len(got) != 1 || got[0] != "0xdef" {
		t.Fatalf("x-caller=%v", got)
	}
	if got := md.Get("x-span-id"); len(got) != 0 {
		t.Fatalf("未设置 span 时不应写入，got=%v", got)
	}
}
