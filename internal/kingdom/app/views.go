package app

import (
	"fmt"
	"math/big"

	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/pricing"
)

// LandView 是单块地的聚合视图；Price/RoyaltyFee 为当前计算值。
type LandView struct {
	ID               domain.LandID
	Tier             domain.Tier
	Stats            domain.Stats
	Appearance       uint32
	ListedForSale    bool
	Price            *big.Int
	RoyaltyFee       *big.Int
	Owner            domain.Address
	Name             string
	LastTierChangeAt int64
}

// KingdomView 是王国的聚合视图。
type KingdomView struct {
	LandBasePrice                *big.Int
	LandPlotSupply               uint64
	TotalSupply                  uint64
	RemainingSlots               uint64
	TransferEnabled              bool
	TransferEnabledForBelowTier5 bool
	CooldownTime                 int64
	MaxTier                      domain.Tier
	UpgradeStartTime             int64
	TradingStartTime             int64
}

// GetLand 对区间内任意 id 返回视图，未铸造的地块为零值。
func (r *Registry) GetLand(id domain.LandID) (LandView, error) {
	k := r.st.Kingdom
	if !k.InRange(id) {
		return LandView{}, domain.ErrLandNotAvailable.WithData("landId", uint64(id))
	}
	land := r.st.Land(id)
	if land == nil {
		land = &domain.Land{ID: id}
	}
	q := pricing.QuoteLand(k, land)
	owner, _ := r.st.Ownership.OwnerOf(id)
	return LandView{
		ID:               id,
		Tier:             land.Tier,
		Stats:            land.Stats,
		Appearance:       land.Appearance,
		ListedForSale:    land.ListedForSale,
		Price:            q.Price,
		RoyaltyFee:       q.Royalty,
		Owner:            owner,
		Name:             land.Name,
		LastTierChangeAt: land.LastTierChangeAt,
	}, nil
}

func (r *Registry) GetKingdom() KingdomView {
	k := r.st.Kingdom
	return KingdomView{
		LandBasePrice:                domain.Wei(k.LandBasePrice),
		LandPlotSupply:               k.LandPlotSupply,
		TotalSupply:                  k.TotalSupply,
		RemainingSlots:               k.RemainingSlots(),
		TransferEnabled:              k.TransferEnabled,
		TransferEnabledForBelowTier5: k.TransferEnabledForBelowTier5,
		CooldownTime:                 k.CooldownTime,
		MaxTier:                      k.MaxTier,
		UpgradeStartTime:             k.UpgradeStartTime,
		TradingStartTime:             k.TradingStartTime,
	}
}

// RoyaltyInfo 返回任意成交价下的 (接收方, 抽成)。
func (r *Registry) RoyaltyInfo(id domain.LandID, salePrice *big.Int) (domain.Address, *big.Int) {
	return pricing.RoyaltyInfo(r.st.Kingdom, r.st.Land(id), salePrice)
}

func (r *Registry) OwnerOf(id domain.LandID) (domain.Address, error) {
	return r.st.Ownership.OwnerOf(id)
}

func (r *Registry) BalanceOf(owner domain.Address) uint64 {
	return r.st.Ownership.BalanceOf(owner)
}

func (r *Registry) GetApproved(id domain.LandID) (domain.Address, error) {
	if _, err := r.st.Ownership.OwnerOf(id); err != nil {
		return domain.ZeroAddress, err
	}
	return r.st.Ownership.GetApproved(id), nil
}

func (r *Registry) IsApprovedForAll(owner, operator domain.Address) bool {
	return r.st.Ownership.IsApprovedForAll(owner, operator)
}

// TokenURI = baseURI + id；未设置 baseURI 时为空串。
func (r *Registry) TokenURI(id domain.LandID) (string, error) {
	if _, err := r.st.Ownership.OwnerOf(id); err != nil {
		return "", err
	}
	base := r.st.Kingdom.BaseURI
	if base == "" {
		return "", nil
	}
	return fmt.Sprintf("%s%d", base, id), nil
}

// Owner 返回部署者。
func (r *Registry) Owner() domain.Address {
	return r.st.Roles.Owner()
}

func (r *Registry) TotalSupply() uint64 {
	return r.st.Kingdom.TotalSupply
}

func (r *Registry) HasRole(role access.Role, account domain.Address) bool {
	return r.st.Roles.HasRole(role, account)
}

func (r *Registry) IsWhitelistedApprover(a domain.Address) bool {
	return r.st.Whitelist.Contains(a)
}

// WalletBalance 返回地址在价值账本中的余额。
func (r *Registry) WalletBalance(a domain.Address) *big.Int {
	return r.st.Wallet.BalanceOf(a)
}
