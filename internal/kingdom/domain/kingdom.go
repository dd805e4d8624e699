package domain

import "math/big"

const (
	// MaxTier 是地块的最高等级。
	MaxTier Tier = 5
	// CooldownSeconds 是升阶后第三方可购买前的冷却时长。
	CooldownSeconds int64 = 15 * 60
	// BpsDenominator 是基点分母。
	BpsDenominator = 10000
)

// Kingdom 是王国单例记录，只被管理员 setter 与计数器修改。
type Kingdom struct {
	LandBasePrice                *big.Int
	LandPlotSupply               uint64
	ReservedLands                uint64
	TotalSupply                  uint64
	NextLandID                   LandID
	TransferEnabled              bool
	TransferEnabledForBelowTier5 bool
	CooldownTime                 int64
	MaxTier                      Tier
	UpgradeStartTime             int64
	TradingStartTime             int64
	Treasury                     Address
	TierRoyaltyBps               uint64
	DefaultRoyaltyReceiver       Address
	DefaultRoyaltyBps            uint64
	Verifier                     Address
	BaseURI                      string
	AppearanceVariants           uint32
}

// RemainingSlots = 供应上限 - 保留前缀 - 已铸造。
func (k *Kingdom) RemainingSlots() uint64 {
	used := k.ReservedLands + k.TotalSupply
	if used >= k.LandPlotSupply {
		return 0
	}
	return k.LandPlotSupply - used
}

// Reserved 报告 id 是否落在永不可铸造的保留前缀里。
func (k *Kingdom) Reserved(id LandID) bool {
	return uint64(id) < k.ReservedLands
}

func (k *Kingdom) InRange(id LandID) bool {
	return uint64(id) < k.LandPlotSupply
}

func (k *Kingdom) Clone() *Kingdom {
	if k == nil {
		return nil
	}
	cp := *k
	cp.LandBasePrice = Wei(k.LandBasePrice)
	return &cp
}
