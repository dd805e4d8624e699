package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"LandKingdom/internal/kingdom/actor"
	"LandKingdom/internal/kingdom/actors"
	"LandKingdom/internal/kingdom/app/port"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/infra/persistence/memory"
	kingdommongo "LandKingdom/internal/kingdom/infra/persistence/mongodb"
	kingdommysql "LandKingdom/internal/kingdom/infra/persistence/mysql"
	"LandKingdom/internal/kingdom/interfaces"
	kingdomgrpc "LandKingdom/internal/kingdom/interfaces/handler/grpc"
	kws "LandKingdom/internal/kingdom/interfaces/handler/ws"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/internal/shared/infrastructure/db"
	sharedmongo "LandKingdom/internal/shared/infrastructure/mongo"
	"LandKingdom/internal/shared/logs"
	"LandKingdom/internal/shared/metrics"
	"LandKingdom/internal/shared/serverconfig"
	"LandKingdom/internal/shared/transport/grpc"
	transporthttp "LandKingdom/internal/shared/transport/http"
	"LandKingdom/internal/shared/transport/ws"
	"LandKingdom/internal/shared/utils"
	"LandKingdom/modules/kit/logx"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := serverconfig.Load(); err != nil {
		panic(err)
	}
	if err := logs.Init("kingdom", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	serverconfig.OnReload = func(path string, err error) {
		if err != nil {
			logs.Error("配置热更新失败", zap.String("path", path), zap.Error(err))
			return
		}
		logs.Info("配置文件变更，已重新加载；运行中的王国参数需重启生效", zap.String("path", path))
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	conf := serverconfig.Conf
	if conf.Kingdom.Admin == (common.Address{}) {
		logs.Fatal("kingdom.admin 未配置")
	}
	metrics.RegisterMetrics()
	baseLogger := logx.NewZapLogger(logs.L())

	repo, closeRepo, err := openRepository(conf)
	if err != nil {
		logs.Fatal("open repository failed", zap.Error(err), zap.String("driver", conf.Storage.Driver))
	}
	defer closeRepo()

	ids, err := utils.DefaultSnowflake()
	if err != nil {
		logs.Fatal("snowflake init failed", zap.Error(err))
	}
	hub := ws.NewHub()
	publisher := kws.NewEventPublisher(hub, ids, baseLogger)

	rt := actor.NewRuntime(actors.Config{
		Options:     stateOptions(conf),
		Repo:        repo,
		FlushEvery:  conf.Storage.FlushEvery,
		Logger:      baseLogger,
		EntropySeed: entropySeed(conf.Actor.EntropySeed),
		Publisher:   publisher,
	}, conf.Actor.AskTimeout)
	defer rt.Shutdown()

	kingdomModule := interfaces.New(rt, conf.Dev, baseLogger)

	wsRouter := ws.NewRouter(baseLogger)
	wsRouter.Register(kingdomModule)

	httpServer := transporthttp.NewHttpServer(hostPort(conf.HTTPServer.Host, conf.HTTPServer.Port), nil, baseLogger)
	httpServer.Register(kingdomModule)
	wsServer := ws.NewServer(wsRouter, hub, baseLogger)
	httpServer.Engine().GET("/ws", gin.WrapH(wsServer))

	grpcAddr := hostPort(conf.GRPCServer.Host, conf.GRPCServer.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logs.Fatal("grpc listen failed", zap.Error(err), zap.String("addr", grpcAddr))
	}
	grpcServer, health := grpc.NewServer(baseLogger)
	kingdomgrpc.Register(grpcServer, kingdomgrpc.NewServer(rt))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("kingdom http server start failed: %w", err)
		}
	}()
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("kingdom grpc server start failed: %w", err)
		}
	}()
	health.SetServingStatus(grpc.KingdomService, healthpb.HealthCheckResponse_SERVING)
	httpServer.SetReady(true)
	logs.Info("kingdom started",
		zap.String("http", hostPort(conf.HTTPServer.Host, conf.HTTPServer.Port)),
		zap.String("grpc", grpcAddr),
		zap.String("storage", conf.Storage.Driver))

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	health.SetServingStatus(grpc.KingdomService, healthpb.HealthCheckResponse_NOT_SERVING)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
}

// openRepository 按 storage.driver 打开快照仓库；返回的 close 在进程退出时调用。
func openRepository(conf serverconfig.Config) (port.KingdomRepository, func(), error) {
	switch conf.Storage.Driver {
	case "", "memory":
		return memory.NewKingdomRepository(), func() {}, nil
	case "mysql":
		gdb, closeDB, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, nil, err
		}
		repo := kingdommysql.NewKingdomRepo(gdb)
		if err := repo.AutoMigrate(); err != nil {
			_ = closeDB()
			return nil, nil, err
		}
		return repo, func() { _ = closeDB() }, nil
	case "mongodb":
		mdb, disconnect, err := sharedmongo.Open(context.Background(), conf.MongoDB, logs.L())
		if err != nil {
			return nil, nil, err
		}
		return kingdommongo.NewKingdomRepository(mdb), func() { _ = disconnect(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}

func stateOptions(conf serverconfig.Config) state.Options {
	k := conf.Kingdom
	return state.Options{
		Self:            k.Self,
		Deployer:        k.Admin,
		ExtraMintMinter: conf.ExtraMint.Minter,
		Kingdom: domain.Kingdom{
			LandBasePrice:                k.LandBasePrice.Wei(),
			LandPlotSupply:               k.LandPlotSupply,
			ReservedLands:                k.ReservedLands,
			TransferEnabled:              k.TransferEnabled,
			TransferEnabledForBelowTier5: k.TransferBelowMaxTier,
			UpgradeStartTime:             k.UpgradeStartTime,
			TradingStartTime:             k.TradingStartTime,
			Treasury:                     k.Treasury,
			TierRoyaltyBps:               k.TierRoyaltyBps,
			DefaultRoyaltyReceiver:       k.DefaultRoyaltyReceiver,
			DefaultRoyaltyBps:            k.DefaultRoyaltyBps,
			Verifier:                     k.Verifier,
			BaseURI:                      k.BaseURI,
			AppearanceVariants:           k.AppearanceVariants,
		},
	}
}

// entropySeed 为空时返回全零，由 actor 随机起链。
func entropySeed(raw string) [32]byte {
	if raw == "" {
		return [32]byte{}
	}
	return common.HexToHash(raw)
}

func hostPort(host string, port int) string {
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, port)
}
