// Package grpc 提供王国的只读 gRPC 查询：消息使用 protobuf 知名类型，不依赖生成代码。
package grpc

import (
	"context"
	"fmt"
	"math/big"

	kapp "LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/modules/kit/errx"

	"github.com/ethereum/go-ethereum/common"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Querier interface {
	Query(ctx context.Context, q any) (any, error)
}

// KingdomQueryServer 是 landkingdom.Kingdom 服务的方法集。
type KingdomQueryServer interface {
	GetKingdom(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetLand(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
	OwnerOf(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error)
	BalanceOf(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error)
}

type Server struct {
	kingdom Querier
}

var _ KingdomQueryServer = (*Server)(nil)

func NewServer(kingdom Querier) *Server {
	return &Server{kingdom: kingdom}
}

// Register 把服务挂到 grpc server 上。
func Register(s gogrpc.ServiceRegistrar, srv KingdomQueryServer) {
	s.RegisterService(&serviceDesc, srv)
}

func (s *Server) GetKingdom(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	res, err := s.kingdom.Query(ctx, &messages.GetKingdom{})
	if err != nil {
		return nil, err
	}
	v, ok := res.(kapp.KingdomView)
	if !ok {
		return nil, unexpected(res)
	}
	return structpb.NewStruct(map[string]any{
		"landBasePrice":                weiString(v.LandBasePrice),
		"landPlotSupply":               v.LandPlotSupply,
		"totalSupply":                  v.TotalSupply,
		"remainingSlots":               v.RemainingSlots,
		"transferEnabled":              v.TransferEnabled,
		"transferEnabledForBelowTier5": v.TransferEnabledForBelowTier5,
		"cooldownTime":                 v.CooldownTime,
		"maxTier":                      uint32(v.MaxTier),
		"upgradeStartTime":             v.UpgradeStartTime,
		"tradingStartTime":             v.TradingStartTime,
	})
}

func (s *Server) GetLand(ctx context.Context, in *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	res, err := s.kingdom.Query(ctx, &messages.GetLand{LandID: domain.LandID(in.GetValue())})
	if err != nil {
		return nil, err
	}
	v, ok := res.(kapp.LandView)
	if !ok {
		return nil, unexpected(res)
	}
	return structpb.NewStruct(map[string]any{
		"id":   uint64(v.ID),
		"tier": uint32(v.Tier),
		"stats": map[string]any{
			"fertility": v.Stats.Fertility,
			"wealth":    v.Stats.Wealth,
			"defense":   v.Stats.Defense,
			"prestige":  v.Stats.Prestige,
		},
		"appearance":       v.Appearance,
		"listedForSale":    v.ListedForSale,
		"price":            weiString(v.Price),
		"royaltyFee":       weiString(v.RoyaltyFee),
		"owner":            v.Owner.Hex(),
		"name":             v.Name,
		"lastTierChangeAt": v.LastTierChangeAt,
	})
}

func (s *Server) OwnerOf(ctx context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error) {
	res, err := s.kingdom.Query(ctx, &messages.OwnerOf{LandID: domain.LandID(in.GetValue())})
	if err != nil {
		return nil, err
	}
	owner, ok := res.(domain.Address)
	if !ok {
		return nil, unexpected(res)
	}
	return wrapperspb.String(owner.Hex()), nil
}

func (s *Server) BalanceOf(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	if !common.IsHexAddress(in.GetValue()) {
		return nil, errx.ErrReqParam.WithData("address", in.GetValue())
	}
	res, err := s.kingdom.Query(ctx, &messages.BalanceOf{Owner: common.HexToAddress(in.GetValue())})
	if err != nil {
		return nil, err
	}
	n, ok := res.(uint64)
	if !ok {
		return nil, unexpected(res)
	}
	return wrapperspb.UInt64(n), nil
}

func unexpected(res any) error {
	return errx.ErrInternal.WithCause(fmt.Errorf("unexpected query result %T", res))
}

// weiString 金额以十进制字符串输出，避免 double 丢精度。
func weiString(w *big.Int) string {
	if w == nil {
		return "0"
	}
	return w.String()
}
