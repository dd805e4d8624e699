package app

import (
	"math/big"

	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
)

func (r *Registry) admin(call *domain.Call) error {
	if err := r.st.Roles.Check(access.DefaultAdmin, call.From); err != nil {
		return err
	}
	return nonPayable(call)
}

func (r *Registry) SetLandBasePrice(call *domain.Call, price *big.Int) error {
	if err := r.admin(call); err != nil {
		return err
	}
	if price == nil || price.Sign() <= 0 {
		return domain.ErrInvalidInput.WithData("price", "must be positive")
	}
	r.st.Kingdom.LandBasePrice = domain.Wei(price)
	r.st.TouchKingdom()
	return nil
}

func (r *Registry) SetURI(call *domain.Call, baseURI string) error {
	if err := r.admin(call); err != nil {
		return err
	}
	r.st.Kingdom.BaseURI = baseURI
	r.st.TouchKingdom()
	return nil
}

func (r *Registry) SetVerifier(call *domain.Call, verifier domain.Address) error {
	if err := r.admin(call); err != nil {
		return err
	}
	if verifier == domain.ZeroAddress {
		return domain.ErrInvalidInput.WithData("verifier", "zero address")
	}
	r.st.Kingdom.Verifier = verifier
	r.st.TouchKingdom()
	return nil
}

// SetDefaultRoyalty 调整最高等级地块成交时的版税接收方与基点。
func (r *Registry) SetDefaultRoyalty(call *domain.Call, receiver domain.Address, bps uint64) error {
	if err := r.admin(call); err != nil {
		return err
	}
	if receiver == domain.ZeroAddress || bps > domain.BpsDenominator {
		return domain.ErrInvalidInput.WithDataMap(map[string]any{"receiver": receiver.Hex(), "bps": bps})
	}
	r.st.Kingdom.DefaultRoyaltyReceiver = receiver
	r.st.Kingdom.DefaultRoyaltyBps = bps
	r.st.TouchKingdom()
	return nil
}

// SetTierRoyaltyBps 调整低于最高等级时金库抽成的基点。
func (r *Registry) SetTierRoyaltyBps(call *domain.Call, bps uint64) error {
	if err := r.admin(call); err != nil {
		return err
	}
	if bps > domain.BpsDenominator {
		return domain.ErrInvalidInput.WithData("bps", bps)
	}
	r.st.Kingdom.TierRoyaltyBps = bps
	r.st.TouchKingdom()
	return nil
}

func (r *Registry) SetTransferEnabled(call *domain.Call, enabled, belowMaxTier bool) error {
	if err := r.admin(call); err != nil {
		return err
	}
	r.st.Kingdom.TransferEnabled = enabled
	r.st.Kingdom.TransferEnabledForBelowTier5 = belowMaxTier
	r.st.TouchKingdom()
	return nil
}

func (r *Registry) SetWhitelistedApprover(call *domain.Call, approver domain.Address, allowed bool) error {
	if err := r.admin(call); err != nil {
		return err
	}
	if allowed {
		r.st.Whitelist[approver] = true
	} else {
		delete(r.st.Whitelist, approver)
	}
	r.st.TouchKingdom()
	return nil
}

// SetStartTime 只记录时间，不参与任何校验。
func (r *Registry) SetStartTime(call *domain.Call, upgradeStart, tradingStart int64) error {
	if err := r.admin(call); err != nil {
		return err
	}
	r.st.Kingdom.UpgradeStartTime = upgradeStart
	r.st.Kingdom.TradingStartTime = tradingStart
	r.st.TouchKingdom()
	return nil
}

func (r *Registry) GrantRole(call *domain.Call, role access.Role, account domain.Address) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	if err := r.st.Roles.Grant(call.From, role, account); err != nil {
		return err
	}
	r.st.TouchKingdom()
	return nil
}

func (r *Registry) RevokeRole(call *domain.Call, role access.Role, account domain.Address) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	if err := r.st.Roles.Revoke(call.From, role, account); err != nil {
		return err
	}
	r.st.TouchKingdom()
	return nil
}
