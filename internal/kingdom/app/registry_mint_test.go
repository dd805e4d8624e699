package app

import (
	"errors"
	"testing"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/stats"
)

func TestMint_从保留前缀之后顺序分配(t *testing.T) {
	f := newFixture(t, 2500)
	r, err := f.exec(minter, nil, func(c *domain.Call) error {
		_, err := f.reg.Mint(c, alice, 0)
		return err
	})
	f.ok(err)

	ev, ok := eventOf(r, domain.EventTransfer)
	if !ok || ev.LandID != 4 || ev.From != domain.ZeroAddress || ev.To != alice {
		t.Fatalf("Transfer 事件不符: %+v", ev)
	}
	up, ok := eventOf(r, domain.EventLandUpgraded)
	if !ok || up.Tier != 1 || up.To != alice {
		t.Fatalf("LandUpgraded 事件不符: %+v", up)
	}
	if !hasEvent(r, domain.EventMetadataUpdate) {
		t.Fatalf("期望 MetadataUpdate 事件")
	}

	view, err := f.reg.GetLand(4)
	f.ok(err)
	lo, hi := stats.Bounds(1)
	if view.Tier != 1 || view.Owner != alice || view.Stats.Total() < lo || view.Stats.Total() > hi {
		t.Fatalf("铸造后地块不符: %+v", view)
	}
	if view.Price.Cmp(domain.Ether(5, 2)) != 0 || view.RoyaltyFee.Cmp(domain.Ether(1, 2)) != 0 {
		t.Fatalf("价格/抽成不符 price=%s fee=%s", view.Price, view.RoyaltyFee)
	}
	k := f.reg.GetKingdom()
	if k.TotalSupply != 1 || k.RemainingSlots != 2495 || f.reg.BalanceOf(alice) != 1 {
		t.Fatalf("王国计数不符: %+v", k)
	}
}

func TestMint_权限与哨兵(t *testing.T) {
	f := newFixture(t, 2500)
	_, err := f.exec(bob, nil, func(c *domain.Call) error {
		_, err := f.reg.Mint(c, alice, 0)
		return err
	})
	if !errors.Is(err, domain.ErrUnauthorizedAccount) {
		t.Fatalf("非 minter 期望 AccessControlUnauthorizedAccount, got=%v", err)
	}
	_, err = f.exec(minter, nil, func(c *domain.Call) error {
		_, err := f.reg.Mint(c, alice, 5)
		return err
	})
	if !errors.Is(err, domain.ErrLandNotAvailable) {
		t.Fatalf("非 0 哨兵期望 LandNotAvailable, got=%v", err)
	}
	_, err = f.exec(minter, domain.Ether(1, 2), func(c *domain.Call) error {
		_, err := f.reg.Mint(c, alice, 0)
		return err
	})
	if !errors.Is(err, domain.ErrEtherNotAccepted) {
		t.Fatalf("附带金额期望 EtherNotAccepted, got=%v", err)
	}
	if f.reg.TotalSupply() != 0 {
		t.Fatalf("失败的铸造不应改变供应量")
	}
}

func TestMint_铸满后不可再铸(t *testing.T) {
	f := newFixture(t, 10)
	if got := f.reg.GetKingdom().RemainingSlots; got != 6 {
		t.Fatalf("期望剩余 6, got=%d", got)
	}
	for i := 0; i < 6; i++ {
		if id := f.mint(alice); id != domain.LandID(4+i) {
			t.Fatalf("第 %d 次铸造期望 id=%d, got=%d", i, 4+i, id)
		}
	}
	k := f.reg.GetKingdom()
	if k.TotalSupply != 6 || k.RemainingSlots != 0 {
		t.Fatalf("铸满后计数不符: %+v", k)
	}
	_, err := f.exec(minter, nil, func(c *domain.Call) error {
		_, err := f.reg.Mint(c, alice, 0)
		return err
	})
	if !errors.Is(err, domain.ErrLandNotAvailable) {
		t.Fatalf("超出上限期望 LandNotAvailable, got=%v", err)
	}
}

func TestMintBatch_任一失败整批回滚(t *testing.T) {
	f := newFixture(t, 7)
	_, err := f.exec(minter, nil, func(c *domain.Call) error {
		_, err := f.reg.MintBatch(c, alice, []domain.LandID{0, 0, 0, 0})
		return err
	})
	if !errors.Is(err, domain.ErrLandNotAvailable) {
		t.Fatalf("期望 LandNotAvailable, got=%v", err)
	}
	if f.reg.TotalSupply() != 0 || f.reg.BalanceOf(alice) != 0 {
		t.Fatalf("整批失败后不应有任何铸造")
	}

	var ids []domain.LandID
	_, err = f.exec(minter, nil, func(c *domain.Call) error {
		var err error
		ids, err = f.reg.MintBatch(c, alice, []domain.LandID{0, 0, 0})
		return err
	})
	f.ok(err)
	if len(ids) != 3 || ids[0] != 4 || ids[2] != 6 {
		t.Fatalf("批量铸造 id 不符: %v", ids)
	}

	_, err = f.exec(minter, nil, func(c *domain.Call) error {
		_, err := f.reg.MintBatch(c, alice, nil)
		return err
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("空批次期望 InvalidInput, got=%v", err)
	}
}

func TestReceive_拒收来款(t *testing.T) {
	f := newFixture(t, 100)
	err := f.reg.Receive(f.call(alice, domain.Ether(1, 0)))
	if !errors.Is(err, domain.ErrEtherNotAccepted) || err.Error() == "" {
		t.Fatalf("期望 EtherNotAccepted, got=%v", err)
	}
}
