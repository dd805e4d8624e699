package pricing

import (
	"math/big"

	"LandKingdom/internal/kingdom/domain"
)

// Quote 是一次结算报价：应付价格、金库抽成及其接收方。
type Quote struct {
	Price    *big.Int
	Royalty  *big.Int
	Receiver domain.Address
}

// TierPrice 返回 base × 2^tier，仅对 1 ≤ tier < MaxTier 有意义。
func TierPrice(base *big.Int, tier domain.Tier) *big.Int {
	if base == nil {
		return new(big.Int)
	}
	return new(big.Int).Lsh(base, uint(tier))
}

// Royalty 返回 price × bps / 10000（向下取整）。
func Royalty(price *big.Int, bps uint64) *big.Int {
	if price == nil || price.Sign() <= 0 || bps == 0 {
		return new(big.Int)
	}
	out := new(big.Int).Mul(price, new(big.Int).SetUint64(bps))
	return out.Quo(out, big.NewInt(domain.BpsDenominator))
}

// RoyaltyRate 返回某等级地块适用的抽成接收方与基点：
// 低于最高等级走金库固定比例，最高等级走默认版税。
func RoyaltyRate(k *domain.Kingdom, tier domain.Tier) (domain.Address, uint64) {
	if tier < k.MaxTier {
		return k.Treasury, k.TierRoyaltyBps
	}
	return k.DefaultRoyaltyReceiver, k.DefaultRoyaltyBps
}

// LandPrice 返回地块当前价格：低于最高等级按阶梯价，最高等级取挂单价。
func LandPrice(k *domain.Kingdom, land *domain.Land) *big.Int {
	if land == nil || !land.Minted() {
		return new(big.Int)
	}
	if land.Tier < k.MaxTier {
		return TierPrice(k.LandBasePrice, land.Tier)
	}
	return land.Price.Big()
}

// QuoteLand 计算地块当前价格及抽成。
func QuoteLand(k *domain.Kingdom, land *domain.Land) Quote {
	price := LandPrice(k, land)
	var tier domain.Tier
	if land != nil {
		tier = land.Tier
	}
	receiver, bps := RoyaltyRate(k, tier)
	return Quote{
		Price:    price,
		Royalty:  Royalty(price, bps),
		Receiver: receiver,
	}
}

// RoyaltyInfo 对任意成交价返回 (接收方, 抽成)。
func RoyaltyInfo(k *domain.Kingdom, land *domain.Land, salePrice *big.Int) (domain.Address, *big.Int) {
	var tier domain.Tier
	if land != nil {
		tier = land.Tier
	}
	receiver, bps := RoyaltyRate(k, tier)
	return receiver, Royalty(salePrice, bps)
}
