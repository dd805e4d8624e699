package transfer

import "LandKingdom/internal/kingdom/domain"

// Whitelist 是白名单操作员集合的只读视图。
type Whitelist interface {
	Contains(a domain.Address) bool
}

// Gate 是转移/授权策略：全局锁、按地块等级锁、操作员白名单。
// 购买与升级引起的所有权变化不经过这里。
type Gate struct {
	kingdom   *domain.Kingdom
	whitelist Whitelist
}

func NewGate(k *domain.Kingdom, wl Whitelist) *Gate {
	return &Gate{kingdom: k, whitelist: wl}
}

// checkLock 依次检查全局锁与等级锁。
func (g *Gate) checkLock(tier domain.Tier) error {
	if !g.kingdom.TransferEnabled {
		return domain.ErrTransferIsLocked
	}
	if tier < g.kingdom.MaxTier && !g.kingdom.TransferEnabledForBelowTier5 {
		return domain.ErrTransferIsLocked.WithData("tier", uint8(tier))
	}
	return nil
}

// CheckTransfer 用于 transferFrom：caller 是持有人时跳过白名单，否则必须在白名单中。
func (g *Gate) CheckTransfer(caller, owner domain.Address, tier domain.Tier) error {
	if err := g.checkLock(tier); err != nil {
		return err
	}
	if caller == owner {
		return nil
	}
	if !g.whitelist.Contains(caller) {
		return domain.ErrApproverNotWhitelisted.WithData("operator", caller.Hex())
	}
	return nil
}

// CheckApprove 用于单块授权：授权给零地址是撤销，只受锁约束。
func (g *Gate) CheckApprove(to domain.Address, tier domain.Tier) error {
	if err := g.checkLock(tier); err != nil {
		return err
	}
	if to == domain.ZeroAddress {
		return nil
	}
	if !g.whitelist.Contains(to) {
		return domain.ErrApproverNotWhitelisted.WithData("approver", to.Hex())
	}
	return nil
}

// CheckApprovalForAll 用于全局授权：不看等级锁；撤销只受全局锁约束。
func (g *Gate) CheckApprovalForAll(operator domain.Address, approved bool) error {
	if !g.kingdom.TransferEnabled {
		return domain.ErrTransferIsLocked
	}
	if !approved {
		return nil
	}
	if !g.whitelist.Contains(operator) {
		return domain.ErrApproverNotWhitelisted.WithData("operator", operator.Hex())
	}
	return nil
}
