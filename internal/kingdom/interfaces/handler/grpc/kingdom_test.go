package grpc

import (
	"context"
	"math/big"
	"net"
	"sync"
	"testing"
	"time"

	kapp "LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
	rpc "LandKingdom/internal/shared/transport/grpc"
	"LandKingdom/modules/kit/errx"

	"github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")

type fakeKingdom struct {
	mu      sync.Mutex
	queries int
}

func (f *fakeKingdom) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

func (f *fakeKingdom) Query(_ context.Context, q any) (any, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	switch m := q.(type) {
	case *messages.GetKingdom:
		return kapp.KingdomView{LandBasePrice: big.NewInt(1e18), LandPlotSupply: 100, TotalSupply: 7, MaxTier: 5}, nil
	case *messages.GetLand:
		if m.LandID != 4 {
			return nil, errx.NewBiz("LAND_NOT_FOUND", "地块不存在")
		}
		return kapp.LandView{ID: 4, Tier: 1, Stats: domain.Stats{Fertility: 3}, Owner: alice, Price: big.NewInt(250)}, nil
	case *messages.OwnerOf:
		return alice, nil
	case *messages.BalanceOf:
		return uint64(2), nil
	}
	return nil, errx.ErrInternal
}

func startServer(t *testing.T, q Querier) *Client {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	srv, _ := rpc.NewServer(nil)
	Register(srv, NewServer(q))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := rpc.Dial(lis.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn)
}

func TestKingdomService_查询地块(t *testing.T) {
	cli := startServer(t, &fakeKingdom{})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	land, err := cli.GetLand(ctx, 4)
	if err != nil {
		t.Fatalf("GetLand: %v", err)
	}
	fields := land.GetFields()
	if fields["owner"].GetStringValue() != alice.Hex() {
		t.Fatalf("owner 不符: %v", fields["owner"])
	}
	if fields["price"].GetStringValue() != "250" {
		t.Fatalf("price 应为十进制字符串，得到 %v", fields["price"])
	}
	if fields["royaltyFee"].GetStringValue() != "0" {
		t.Fatalf("空金额应输出 0，得到 %v", fields["royaltyFee"])
	}
	if got := fields["stats"].GetStructValue().GetFields()["fertility"].GetNumberValue(); got != 3 {
		t.Fatalf("fertility 期望 3，得到 %v", got)
	}
}

func TestKingdomService_查询王国与余额(t *testing.T) {
	cli := startServer(t, &fakeKingdom{})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	k, err := cli.GetKingdom(ctx)
	if err != nil {
		t.Fatalf("GetKingdom: %v", err)
	}
	if k.GetFields()["landBasePrice"].GetStringValue() != "1000000000000000000" {
		t.Fatalf("landBasePrice 不符: %v", k.GetFields()["landBasePrice"])
	}
	owner, err := cli.OwnerOf(ctx, 4)
	if err != nil || owner != alice.Hex() {
		t.Fatalf("OwnerOf 得到 %q err=%v", owner, err)
	}
	n, err := cli.BalanceOf(ctx, alice.Hex())
	if err != nil || n != 2 {
		t.Fatalf("BalanceOf 得到 %d err=%v", n, err)
	}
}

func TestKingdomService_错误转为status(t *testing.T) {
	fake := &fakeKingdom{}
	cli := startServer(t, fake)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := cli.GetLand(ctx, 9)
	if st, _ := status.FromError(err); st.Code() != codes.FailedPrecondition {
		t.Fatalf("期望 FailedPrecondition，得到 %v", err)
	}

	before := fake.count()
	_, err = cli.BalanceOf(ctx, "not-an-address")
	if st, _ := status.FromError(err); st.Code() != codes.InvalidArgument {
		t.Fatalf("期望 InvalidArgument，得到 %v", err)
	}
	if fake.count() != before {
		t.Fatalf("非法地址不应进入查询")
	}
}
