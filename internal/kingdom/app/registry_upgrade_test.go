package app

import (
	"errors"
	"testing"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/stats"
)

func TestUpgrade_支付抽成升一阶(t *testing.T) {
	f := newFixture(t, 2500)
	id := f.mint(alice)
	f.fund(alice, 1)

	before := f.balance(treasury)
	r, err := f.upgrade(alice, id)
	f.ok(err)
	if got := diff(f.balance(treasury), before); got.Cmp(domain.Ether(1, 2)) != 0 {
		t.Fatalf("金库期望 +0.01, got=%s", got)
	}
	up, ok := eventOf(r, domain.EventLandUpgraded)
	if !ok || up.Tier != 2 || up.To != alice || !hasEvent(r, domain.EventMetadataUpdate) {
		t.Fatalf("升阶事件不符: %+v", r.Events)
	}
	view, _ := f.reg.GetLand(id)
	lo, hi := stats.Bounds(2)
	if view.Tier != 2 || view.Stats.Total() < lo || view.Stats.Total() > hi {
		t.Fatalf("升阶后地块不符: %+v", view)
	}
}

func TestUpgrade_不受冷却限制且可改名(t *testing.T) {
	f := newFixture(t, 2500)
	id := f.mint(alice)
	f.fund(alice, 1)
	_, err := f.exec(alice, domain.Ether(1, 2), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(id, "晨曦", true, f.now+60))
	})
	f.ok(err)
	if view, _ := f.reg.GetLand(id); view.Name != "晨曦" || view.Tier != 2 {
		t.Fatalf("期望改名并升阶: %+v", view)
	}
}

func TestUpgrade_超额支付全部进金库(t *testing.T) {
	f := newFixture(t, 2500)
	id := f.mint(alice)
	f.fund(alice, 1)
	before := f.balance(treasury)
	_, err := f.exec(alice, domain.Ether(5, 2), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(id, "", false, f.now+60))
	})
	f.ok(err)
	if got := diff(f.balance(treasury), before); got.Cmp(domain.Ether(5, 2)) != 0 {
		t.Fatalf("金库期望 +0.05, got=%s", got)
	}
}

func TestUpgrade_拒绝场景(t *testing.T) {
	f := newFixture(t, 2500)
	id := f.mint(alice)
	f.fund(alice, 1)
	f.fund(bob, 1)

	_, err := f.exec(bob, domain.Ether(1, 2), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(id, "", false, f.now+60))
	})
	if !errors.Is(err, domain.ErrOnlyOwner) {
		t.Fatalf("非持有人期望 OnlyOwner, got=%v", err)
	}

	_, err = f.exec(alice, domain.Ether(9, 3), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(id, "", false, f.now+60))
	})
	if !errors.Is(err, domain.ErrNotEnoughEther) {
		t.Fatalf("金额不足期望 NotEnoughEther, got=%v", err)
	}

	_, err = f.exec(alice, domain.Ether(1, 2), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(id, "", false, f.now-1))
	})
	if !errors.Is(err, domain.ErrSignatureExpired) {
		t.Fatalf("过期签名期望 SignatureExpired, got=%v", err)
	}

	_, err = f.exec(alice, domain.Ether(1, 2), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(99, "", false, f.now+60))
	})
	if !errors.Is(err, domain.ErrOnlyOwner) {
		t.Fatalf("未铸造地块期望 OnlyOwner, got=%v", err)
	}

	top := f.toMaxTier(alice)
	_, err = f.exec(alice, domain.Ether(1, 0), func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(top, "", false, f.now+60))
	})
	if !errors.Is(err, domain.ErrAlreadyReachedMaxTier) {
		t.Fatalf("满阶期望 AlreadyReachedMaxTier, got=%v", err)
	}
}

func TestUpgrade_逐级属性总和在区间内(t *testing.T) {
	f := newFixture(t, 2500)
	f.fund(alice, 10)
	for n := 0; n < 5; n++ {
		id := f.mint(alice)
		for tier := domain.Tier(2); tier <= domain.MaxTier; tier++ {
			_, err := f.upgrade(alice, id)
			f.ok(err)
			view, _ := f.reg.GetLand(id)
			lo, hi := stats.Bounds(tier)
			if view.Tier != tier || view.Stats.Total() < lo || view.Stats.Total() > hi {
				t.Fatalf("tier=%d 总和 %d 不在 [%d,%d]", tier, view.Stats.Total(), lo, hi)
			}
		}
	}
}
