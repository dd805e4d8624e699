package grpc

import (
	"context"
	"fmt"

	"LandKingdom/modules/kit/logx"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// KingdomService 是王国只读查询服务的全名，也是健康检查的服务名。
const KingdomService = "landkingdom.Kingdom"

// NewServer 创建带 trace、访问日志拦截器与健康检查的 grpc server；健康状态初始为 NOT_SERVING。
func NewServer(log logx.Logger) (*gogrpc.Server, *health.Server) {
	srv := gogrpc.NewServer(
		gogrpc.ChainUnaryInterceptor(unaryServerTrace(), unaryAccessLog(log)),
		gogrpc.ChainStreamInterceptor(streamServerTrace()),
	)
	hs := health.NewServer()
	hs.SetServingStatus(KingdomService, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// Dial 建立到 target 的连接（带 trace 注入）。
func Dial(target string) (*gogrpc.ClientConn, error) {
	opts := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithChainUnaryInterceptor(unaryClientTrace()),
		gogrpc.WithChainStreamInterceptor(streamClientTrace()),
	}
	conn, err := gogrpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", target, err)
	}
	return conn, nil
}

// CheckHealth 查询 target 上王国服务的健康状态。
func CheckHealth(ctx context.Context, target string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := Dial(target)
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: KingdomService})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
