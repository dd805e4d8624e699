package app

import (
	"math/big"

	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/pricing"
)

// Authorization 是链下签发的授权参数，Signature 覆盖 (LandID, Protected, NewName, ExpiresAt)。
type Authorization struct {
	LandID      domain.LandID
	WantsRename bool
	NewName     string
	Protected   bool
	Signature   []byte
	ExpiresAt   int64
}

// Purchase 任何人可调用：低于最高等级按阶梯价买下并升一阶，最高等级按挂单价买下。
func (r *Registry) Purchase(call *domain.Call, auth Authorization) error {
	k := r.st.Kingdom
	id := auth.LandID
	if k.Reserved(id) || !k.InRange(id) {
		return domain.ErrLandNotAvailable.WithData("landId", uint64(id))
	}
	land := r.st.Land(id)
	if !land.Minted() || land.Tier == k.MaxTier && !land.ListedForSale {
		return domain.ErrNotForSale.WithData("landId", uint64(id))
	}
	if err := r.verify(call, auth); err != nil {
		return err
	}

	tier := land.Tier
	var price *big.Int
	if tier < k.MaxTier {
		if call.Now-land.LastTierChangeAt < k.CooldownTime {
			return domain.ErrCooldownTimeNotPassed.WithData("lastTierChangeAt", land.LastTierChangeAt)
		}
		if auth.Protected {
			return domain.ErrLandIsProtected.WithData("landId", uint64(id))
		}
		price = pricing.TierPrice(k.LandBasePrice, tier)
	} else {
		price = land.Price.Big()
	}
	if call.Paid().Cmp(price) < 0 {
		return domain.ErrNotEnoughEther.WithDataMap(map[string]any{
			"price": price.String(),
			"paid":  call.Paid().String(),
		})
	}

	receiver, bps := pricing.RoyaltyRate(k, tier)
	royalty := pricing.Royalty(price, bps)
	seller, err := r.st.Ownership.OwnerOf(id)
	if err != nil {
		return err
	}
	paid, err := r.collect(call)
	if err != nil {
		return err
	}

	r.st.Ownership.Move(seller, call.From, id)
	r.st.TouchLedger()
	r.st.MutLand(id).ClearListing()
	call.Emit(domain.TransferEvent(seller, call.From, id))
	if tier < k.MaxTier {
		r.tierUp(call, id, call.From, auth.WantsRename, auth.NewName)
	} else if auth.WantsRename {
		r.st.MutLand(id).Name = auth.NewName
	}

	if err := r.payRoyalty(call, receiver, royalty); err != nil {
		return err
	}
	r.payBestEffort(call, id, seller, new(big.Int).Sub(paid, royalty))
	return nil
}

// Upgrade 只能由持有人调用：支付当前阶梯价的抽成即可升一阶，全额进金库。
func (r *Registry) Upgrade(call *domain.Call, auth Authorization) error {
	id := auth.LandID
	land, err := r.requireOwner(call, id)
	if err != nil {
		return err
	}
	k := r.st.Kingdom
	if land.Tier >= k.MaxTier {
		return domain.ErrAlreadyReachedMaxTier.WithData("landId", uint64(id))
	}
	if err := r.verify(call, auth); err != nil {
		return err
	}
	fee := pricing.Royalty(pricing.TierPrice(k.LandBasePrice, land.Tier), k.TierRoyaltyBps)
	if call.Paid().Cmp(fee) < 0 {
		return domain.ErrNotEnoughEther.WithDataMap(map[string]any{
			"fee":  fee.String(),
			"paid": call.Paid().String(),
		})
	}
	paid, err := r.collect(call)
	if err != nil {
		return err
	}

	r.tierUp(call, id, call.From, auth.WantsRename, auth.NewName)
	return r.payRoyalty(call, k.Treasury, paid)
}

// ListForSale 只允许最高等级地块的持有人挂单/撤单；撤单时价格归零。
func (r *Registry) ListForSale(call *domain.Call, id domain.LandID, enabled bool, price *big.Int) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	land, err := r.requireOwner(call, id)
	if err != nil {
		return err
	}
	if land.Tier != r.st.Kingdom.MaxTier {
		return domain.ErrOnlyLandWithMaxTier.WithData("landId", uint64(id))
	}
	if enabled && (price == nil || price.Sign() <= 0) {
		return domain.ErrPriceMustBeGreaterThanZero
	}

	mut := r.st.MutLand(id)
	if enabled {
		mut.ListedForSale = true
		mut.Price = domain.NewWei256(price)
	} else {
		mut.ClearListing()
	}
	call.Emit(domain.MetadataUpdateEvent(id))
	return nil
}

// SetName 只允许最高等级地块的持有人在有效授权下改名。
func (r *Registry) SetName(call *domain.Call, auth Authorization) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	land, err := r.requireOwner(call, auth.LandID)
	if err != nil {
		return err
	}
	if land.Tier != r.st.Kingdom.MaxTier {
		return domain.ErrOnlyLandWithMaxTier.WithData("landId", uint64(auth.LandID))
	}
	if err := r.verify(call, auth); err != nil {
		return err
	}
	r.st.MutLand(auth.LandID).Name = auth.NewName
	call.Emit(domain.MetadataUpdateEvent(auth.LandID))
	return nil
}

// SetLandStats 供 GAME_MANAGER 做数值平衡，直接覆盖。
func (r *Registry) SetLandStats(call *domain.Call, id domain.LandID, s domain.Stats) error {
	if err := r.gameManaged(call, id); err != nil {
		return err
	}
	r.st.MutLand(id).Stats = s
	call.Emit(domain.MetadataUpdateEvent(id))
	return nil
}

func (r *Registry) SetLandAppearance(call *domain.Call, id domain.LandID, appearance uint32) error {
	if err := r.gameManaged(call, id); err != nil {
		return err
	}
	r.st.MutLand(id).Appearance = appearance
	call.Emit(domain.MetadataUpdateEvent(id))
	return nil
}

func (r *Registry) gameManaged(call *domain.Call, id domain.LandID) error {
	if err := r.st.Roles.Check(access.GameManager, call.From); err != nil {
		return err
	}
	if err := nonPayable(call); err != nil {
		return err
	}
	if !r.st.Land(id).Minted() {
		return domain.ErrNonexistentToken.WithData("landId", uint64(id))
	}
	return nil
}
