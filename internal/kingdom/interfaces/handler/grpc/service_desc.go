package grpc

import (
	"context"

	rpc "LandKingdom/internal/shared/transport/grpc"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var serviceDesc = gogrpc.ServiceDesc{
	ServiceName: rpc.KingdomService,
	HandlerType: (*KingdomQueryServer)(nil),
	Methods: []gogrpc.MethodDesc{
		{MethodName: "GetKingdom", Handler: unary(func(s KingdomQueryServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
			return s.GetKingdom(ctx, in)
		}, "GetKingdom")},
		{MethodName: "GetLand", Handler: unary(func(s KingdomQueryServer, ctx context.Context, in *wrapperspb.UInt64Value) (*structpb.Struct, error) {
			return s.GetLand(ctx, in)
		}, "GetLand")},
		{MethodName: "OwnerOf", Handler: unary(func(s KingdomQueryServer, ctx context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error) {
			return s.OwnerOf(ctx, in)
		}, "OwnerOf")},
		{MethodName: "BalanceOf", Handler: unary(func(s KingdomQueryServer, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
			return s.BalanceOf(ctx, in)
		}, "BalanceOf")},
	},
	Streams:  []gogrpc.StreamDesc{},
	Metadata: "landkingdom/kingdom.proto",
}

// unary 生成与 protoc 产物等价的方法处理器：解码请求并穿过拦截器链。
func unary[Req any, Resp any](call func(KingdomQueryServer, context.Context, *Req) (*Resp, error), method string) gogrpc.MethodHandler {
	full := "/" + rpc.KingdomService + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(KingdomQueryServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: full}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		})
	}
}

// Client 是 landkingdom.Kingdom 的最小客户端。
type Client struct {
	cc gogrpc.ClientConnInterface
}

func NewClient(cc gogrpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetKingdom(ctx context.Context) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, "/"+rpc.KingdomService+"/GetKingdom", &emptypb.Empty{}, out)
}

func (c *Client) GetLand(ctx context.Context, id uint64) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	return out, c.cc.Invoke(ctx, "/"+rpc.KingdomService+"/GetLand", wrapperspb.UInt64(id), out)
}

func (c *Client) OwnerOf(ctx context.Context, id uint64) (string, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/"+rpc.KingdomService+"/OwnerOf", wrapperspb.UInt64(id), out)
	return out.GetValue(), err
}

func (c *Client) BalanceOf(ctx context.Context, addr string) (uint64, error) {
	out := new(wrapperspb.UInt64Value)
	err := c.cc.Invoke(ctx, "/"+rpc.KingdomService+"/BalanceOf", wrapperspb.String(addr), out)
	return out.GetValue(), err
}
