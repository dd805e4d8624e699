package messages

import (
	"math/big"

	emdomain "LandKingdom/internal/extramint/domain"
	"LandKingdom/internal/kingdom/access"
	kapp "LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/domain"
)

// Origin 是写命令的发起方与附带金额。
type Origin struct {
	From  domain.Address
	Value *big.Int
}

func (o Origin) Sender() Origin {
	return o
}

// Command 是所有写命令的公共接口：在 KingdomActor 内以整次调用为单位执行。
type Command interface {
	Sender() Origin
}

// Reply 是写命令的结果；Err 非空时 Events 为空。
type Reply struct {
	Result any
	Events []domain.Event
	Err    error
}

// QueryReply 是只读查询的结果。
type QueryReply struct {
	Result any
	Err    error
}

// Envelope 把请求的链路信息带过 actor 边界。
type Envelope struct {
	TraceID string
	SpanID  string
	Caller  string
	Body    any
}

// ---- 地块 ----

type Mint struct {
	Origin
	To   domain.Address
	Hint domain.LandID
}

type MintBatch struct {
	Origin
	To    domain.Address
	Hints []domain.LandID
}

type Purchase struct {
	Origin
	Auth kapp.Authorization
}

type Upgrade struct {
	Origin
	Auth kapp.Authorization
}

type ListForSale struct {
	Origin
	LandID  domain.LandID
	Enabled bool
	Price   *big.Int
}

type SetName struct {
	Origin
	Auth kapp.Authorization
}

type SetLandStats struct {
	Origin
	LandID domain.LandID
	Stats  domain.Stats
}

type SetLandAppearance struct {
	Origin
	LandID     domain.LandID
	Appearance uint32
}

type TransferFrom struct {
	Origin
	Owner  domain.Address
	To     domain.Address
	LandID domain.LandID
}

type Approve struct {
	Origin
	To     domain.Address
	LandID domain.LandID
}

type SetApprovalForAll struct {
	Origin
	Operator domain.Address
	Approved bool
}

// Receive 是没有对应操作的来款。
type Receive struct {
	Origin
}

// ---- 管理 ----

type SetLandBasePrice struct {
	Origin
	Price *big.Int
}

type SetURI struct {
	Origin
	BaseURI string
}

type SetVerifier struct {
	Origin
	Verifier domain.Address
}

type SetDefaultRoyalty struct {
	Origin
	Receiver domain.Address
	Bps      uint64
}

type SetTierRoyaltyBps struct {
	Origin
	Bps uint64
}

type SetTransferEnabled struct {
	Origin
	Enabled      bool
	BelowMaxTier bool
}

type SetWhitelistedApprover struct {
	Origin
	Approver domain.Address
	Allowed  bool
}

type SetStartTime struct {
	Origin
	UpgradeStart int64
	TradingStart int64
}

type GrantRole struct {
	Origin
	Role    access.Role
	Account domain.Address
}

type RevokeRole struct {
	Origin
	Role    access.Role
	Account domain.Address
}

// Fund 是开发水龙头，只在 dev 模式下由接口层发出。
type Fund struct {
	Origin
	To     domain.Address
	Amount *big.Int
}

// ---- 额外铸造 ----

type AssignSlots struct {
	Origin
	Users []domain.Address
	Slots []uint64
}

type RemoveSlots struct {
	Origin
	Users []domain.Address
	Slots []uint64
}

type SetExtraTotalSupply struct {
	Origin
	TotalSupply uint64
}

type SetExtraMintEnabled struct {
	Origin
	Enabled bool
}

type SetExtraMintEndTime struct {
	Origin
	EndTime int64
}

type SetExtraMintMinter struct {
	Origin
	Minter domain.Address
}

type ExtraMint struct {
	Origin
	Count uint64
}

// ---- 查询 ----

type GetLand struct{ LandID domain.LandID }

type GetKingdom struct{}

type RoyaltyInfo struct {
	LandID    domain.LandID
	SalePrice *big.Int
}

// RoyaltyInfoResult 是 RoyaltyInfo 的结果。
type RoyaltyInfoResult struct {
	Receiver domain.Address
	Amount   *big.Int
}

type OwnerOf struct{ LandID domain.LandID }

type BalanceOf struct{ Owner domain.Address }

type GetApproved struct{ LandID domain.LandID }

type IsApprovedForAll struct{ Owner, Operator domain.Address }

type TokenURI struct{ LandID domain.LandID }

type Owner struct{}

type HasRole struct {
	Role    access.Role
	Account domain.Address
}

type WalletBalance struct{ Address domain.Address }

type ExtraMintUser struct{ User domain.Address }

type ExtraMintConfig struct{}

// ExtraMintConfigResult 是额外铸造配置与当前铸造身份。
type ExtraMintConfigResult struct {
	emdomain.Config
	Minter domain.Address `json:"minter"`
}
