package transfer

import (
	"errors"
	"testing"

	"LandKingdom/internal/kingdom/domain"

	"github.com/ethereum/go-ethereum/common"
)

type setWhitelist map[domain.Address]bool

func (s setWhitelist) Contains(a domain.Address) bool { return s[a] }

var (
	owner    = common.HexToAddress("0x0000000000000000000000000000000000000001")
	market   = common.HexToAddress("0x0000000000000000000000000000000000000002")
	stranger = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

func newGate(enabled, below bool) *Gate {
	k := &domain.Kingdom{MaxTier: domain.MaxTier, TransferEnabled: enabled, TransferEnabledForBelowTier5: below}
	return NewGate(k, setWhitelist{market: true})
}

func TestGate_全局锁拦截一切(t *testing.T) {
	g := newGate(false, true)
	if err := g.CheckTransfer(owner, owner, 5); !errors.Is(err, domain.ErrTransferIsLocked) {
		t.Fatalf("期望 TransferIsLocked, got=%v", err)
	}
	if err := g.CheckApprove(market, 5); !errors.Is(err, domain.ErrTransferIsLocked) {
		t.Fatalf("期望 TransferIsLocked, got=%v", err)
	}
	if err := g.CheckApprovalForAll(market, true); !errors.Is(err, domain.ErrTransferIsLocked) {
		t.Fatalf("期望 TransferIsLocked, got=%v", err)
	}
	if err := g.CheckApprovalForAll(market, false); !errors.Is(err, domain.ErrTransferIsLocked) {
		t.Fatalf("全局锁下撤销也应被拦截, got=%v", err)
	}
}

func TestGate_低阶锁不作用于全局授权(t *testing.T) {
	g := newGate(true, false)
	if err := g.CheckTransfer(owner, owner, 4); !errors.Is(err, domain.ErrTransferIsLocked) {
		t.Fatalf("低阶地块期望 TransferIsLocked, got=%v", err)
	}
	if err := g.CheckApprove(market, 4); !errors.Is(err, domain.ErrTransferIsLocked) {
		t.Fatalf("低阶地块授权期望 TransferIsLocked, got=%v", err)
	}
	if err := g.CheckApprovalForAll(market, true); err != nil {
		t.Fatalf("全局授权不受等级锁影响, got=%v", err)
	}
	if err := g.CheckTransfer(owner, owner, 5); err != nil {
		t.Fatalf("满阶地块持有人转移应通过, got=%v", err)
	}
}

func TestGate_白名单(t *testing.T) {
	g := newGate(true, true)
	if err := g.CheckTransfer(stranger, owner, 5); !errors.Is(err, domain.ErrApproverNotWhitelisted) {
		t.Fatalf("非白名单操作员期望 ApproverNotWhitelisted, got=%v", err)
	}
	if err := g.CheckTransfer(market, owner, 5); err != nil {
		t.Fatalf("白名单操作员应通过, got=%v", err)
	}
	if err := g.CheckApprove(stranger, 5); !errors.Is(err, domain.ErrApproverNotWhitelisted) {
		t.Fatalf("授权非白名单地址期望 ApproverNotWhitelisted, got=%v", err)
	}
	if err := g.CheckApprove(domain.ZeroAddress, 5); err != nil {
		t.Fatalf("撤销授权不看白名单, got=%v", err)
	}
	if err := g.CheckApprovalForAll(stranger, true); !errors.Is(err, domain.ErrApproverNotWhitelisted) {
		t.Fatalf("期望 ApproverNotWhitelisted, got=%v", err)
	}
	if err := g.CheckApprovalForAll(stranger, false); err != nil {
		t.Fatalf("撤销全局授权不看白名单, got=%v", err)
	}
}
