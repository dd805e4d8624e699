package grpc

import (
	"context"

	"LandKingdom/modules/kit/tracex"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// carried 是跨进程透传的上下文字段，与 HTTP 层 X-Trace-Id 一类头对应。
var carried = []struct {
	header string
	get    func(context.Context) (string, bool)
	set    func(context.Context, string) context.Context
}{
	{"x-trace-id", tracex.TraceIDFrom, tracex.WithTraceID},
	{"x-span-id", tracex.SpanIDFrom, tracex.WithSpanID},
	{"x-caller", tracex.CallerFrom, tracex.WithCaller},
}

func unaryClientTrace() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any,
		cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		return invoker(outgoing(ctx), method, req, reply, cc, opts...)
	}
}

func streamClientTrace() gogrpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *gogrpc.StreamDesc, cc *gogrpc.ClientConn,
		method string, streamer gogrpc.Streamer, opts ...gogrpc.CallOption) (gogrpc.ClientStream, error) {
		return streamer(outgoing(ctx), desc, cc, method, opts...)
	}
}

func unaryServerTrace() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		return handler(incoming(ctx), req)
	}
}

func streamServerTrace() gogrpc.StreamServerInterceptor {
	return func(srv any, ss gogrpc.ServerStream, _ *gogrpc.StreamServerInfo, handler gogrpc.StreamHandler) error {
		return handler(srv, &tracedStream{ServerStream: ss, ctx: incoming(ss.Context())})
	}
}

type tracedStream struct {
	gogrpc.ServerStream
	ctx context.Context
}

func (s *tracedStream) Context() context.Context { return s.ctx }

func outgoing(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, f := range carried {
		if v, ok := f.get(ctx); ok {
			ctx = metadata.AppendToOutgoingContext(ctx, f.header, v)
		}
	}
	return ctx
}

// incoming 取出对端透传的字段；缺 trace 或 span 时在本端补齐。
func incoming(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	md, _ := metadata.FromIncomingContext(ctx)
	for _, f := range carried {
		if vs := md.Get(f.header); len(vs) > 0 && vs[0] != "" {
			ctx = f.set(ctx, vs[0])
		}
	}
	if _, ok := tracex.TraceIDFrom(ctx); !ok {
		ctx = tracex.WithTraceID(ctx, tracex.NewTraceID())
	}
	if _, ok := tracex.SpanIDFrom(ctx); !ok {
		ctx = tracex.WithSpanID(ctx, tracex.NewSpanID())
	}
	return ctx
}
