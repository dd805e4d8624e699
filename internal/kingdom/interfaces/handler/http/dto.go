package http

import (
	"math/big"
	"strings"

	kapp "LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// payment 是随调用附带的金额（十进制 wei）。
type payment struct {
	Value string `json:"value"`
}

func (p payment) value() string { return p.Value }

type payable interface {
	value() string
}

// parseWei 解析十进制 wei；空串为 0，负数非法。
func parseWei(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), true
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}

type authReq struct {
	WantsRename bool          `json:"wantsRename"`
	NewName     string        `json:"newName"`
	Protected   bool          `json:"protected"`
	Signature   hexutil.Bytes `json:"signature"`
	ExpiresAt   int64         `json:"expiresAt"`
}

func (a authReq) toAuth(id domain.LandID) kapp.Authorization {
	return kapp.Authorization{
		LandID:      id,
		WantsRename: a.WantsRename,
		NewName:     a.NewName,
		Protected:   a.Protected,
		Signature:   a.Signature,
		ExpiresAt:   a.ExpiresAt,
	}
}

type mintReq struct {
	payment
	To   domain.Address `json:"to"`
	Hint uint64         `json:"hint"`
}

type mintBatchReq struct {
	payment
	To    domain.Address `json:"to"`
	Hints []uint64       `json:"hints"`
}

type signedReq struct {
	payment
	authReq
}

type listingReq struct {
	Enabled bool   `json:"enabled"`
	Price   string `json:"price"`
}

type statsReq struct {
	Stats domain.Stats `json:"stats"`
}

type appearanceReq struct {
	Appearance uint32 `json:"appearance"`
}

type transferReq struct {
	From domain.Address `json:"from"`
	To   domain.Address `json:"to"`
}

type approveReq struct {
	To domain.Address `json:"to"`
}

type operatorReq struct {
	Operator domain.Address `json:"operator"`
	Approved bool           `json:"approved"`
}

type receiveReq struct {
	payment
}

type priceReq struct {
	Price string `json:"price"`
}

type uriReq struct {
	BaseURI string `json:"baseURI"`
}

type verifierReq struct {
	Verifier domain.Address `json:"verifier"`
}

type royaltyReq struct {
	Receiver domain.Address `json:"receiver"`
	Bps      uint64         `json:"bps"`
}

type bpsReq struct {
	Bps uint64 `json:"bps"`
}

type transferPolicyReq struct {
	Enabled      bool `json:"enabled"`
	BelowMaxTier bool `json:"belowMaxTier"`
}

type approverReq struct {
	Approver domain.Address `json:"approver"`
	Allowed  bool           `json:"allowed"`
}

type startTimeReq struct {
	UpgradeStart int64 `json:"upgradeStart"`
	TradingStart int64 `json:"tradingStart"`
}

type roleReq struct {
	Role    string         `json:"role"`
	Account domain.Address `json:"account"`
}

type slotsReq struct {
	Users []domain.Address `json:"users"`
	Slots []uint64         `json:"slots"`
}

type supplyReq struct {
	TotalSupply uint64 `json:"totalSupply"`
}

type enabledReq struct {
	Enabled bool `json:"enabled"`
}

type endTimeReq struct {
	EndTime int64 `json:"endTime"`
}

type minterReq struct {
	Minter domain.Address `json:"minter"`
}

type extraMintReq struct {
	payment
	Count uint64 `json:"count"`
}

type tokenReq struct {
	Address domain.Address `json:"address"`
}

type faucetReq struct {
	To     domain.Address `json:"to"`
	Amount string         `json:"amount"`
}

// 对外视图：金额一律以十进制字符串输出。

type landResp struct {
	ID               uint64       `json:"id"`
	Tier             uint8        `json:"tier"`
	Stats            domain.Stats `json:"stats"`
	Appearance       uint32       `json:"appearance"`
	ListedForSale    bool         `json:"listedForSale"`
	Price            string       `json:"price"`
	RoyaltyFee       string       `json:"royaltyFee"`
	Owner            string       `json:"owner"`
	Name             string       `json:"name"`
	LastTierChangeAt int64        `json:"lastTierChangeAt"`
}

func toLandResp(v kapp.LandView) landResp {
	return landResp{
		ID:               uint64(v.ID),
		Tier:             uint8(v.Tier),
		Stats:            v.Stats,
		Appearance:       v.Appearance,
		ListedForSale:    v.ListedForSale,
		Price:            domain.Wei(v.Price).String(),
		RoyaltyFee:       domain.Wei(v.RoyaltyFee).String(),
		Owner:            v.Owner.Hex(),
		Name:             v.Name,
		LastTierChangeAt: v.LastTierChangeAt,
	}
}

type kingdomResp struct {
	LandBasePrice                string `json:"landBasePrice"`
	LandPlotSupply               uint64 `json:"landPlotSupply"`
	TotalSupply                  uint64 `json:"totalSupply"`
	RemainingSlots               uint64 `json:"remainingSlots"`
	TransferEnabled              bool   `json:"transferEnabled"`
	TransferEnabledForBelowTier5 bool   `json:"transferEnabledForBelowTier5"`
	CooldownTime                 int64  `json:"cooldownTime"`
	MaxTier                      uint8  `json:"maxTier"`
	UpgradeStartTime             int64  `json:"upgradeStartTime"`
	TradingStartTime             int64  `json:"tradingStartTime"`
}

func toKingdomResp(v kapp.KingdomView) kingdomResp {
	return kingdomResp{
		LandBasePrice:                domain.Wei(v.LandBasePrice).String(),
		LandPlotSupply:               v.LandPlotSupply,
		TotalSupply:                  v.TotalSupply,
		RemainingSlots:               v.RemainingSlots,
		TransferEnabled:              v.TransferEnabled,
		TransferEnabledForBelowTier5: v.TransferEnabledForBelowTier5,
		CooldownTime:                 v.CooldownTime,
		MaxTier:                      uint8(v.MaxTier),
		UpgradeStartTime:             v.UpgradeStartTime,
		TradingStartTime:             v.TradingStartTime,
	}
}

type royaltyResp struct {
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
}

func toRoyaltyResp(v messages.RoyaltyInfoResult) royaltyResp {
	return royaltyResp{Receiver: v.Receiver.Hex(), Amount: domain.Wei(v.Amount).String()}
}

func landIDs(in []uint64) []domain.LandID {
	out := make([]domain.LandID, len(in))
	for i, v := range in {
		out[i] = domain.LandID(v)
	}
	return out
}
