package model

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	emdomain "LandKingdom/internal/extramint/domain"
	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/state"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerDocID 是王国单例文档/行的主键。
const LedgerDocID = "kingdom"

// KingdomDoc 是王国单例字段；金额十进制字符串，地址十六进制。
type KingdomDoc struct {
	LandBasePrice                string `bson:"land_base_price" json:"landBasePrice"`
	LandPlotSupply               uint64 `bson:"land_plot_supply" json:"landPlotSupply"`
	ReservedLands                uint64 `bson:"reserved_lands" json:"reservedLands"`
	TotalSupply                  uint64 `bson:"total_supply" json:"totalSupply"`
	NextLandID                   uint64 `bson:"next_land_id" json:"nextLandId"`
	TransferEnabled              bool   `bson:"transfer_enabled" json:"transferEnabled"`
	TransferEnabledForBelowTier5 bool   `bson:"transfer_enabled_below_tier5" json:"transferEnabledForBelowTier5"`
	CooldownTime                 int64  `bson:"cooldown_time" json:"cooldownTime"`
	MaxTier                      uint8  `bson:"max_tier" json:"maxTier"`
	UpgradeStartTime             int64  `bson:"upgrade_start_time" json:"upgradeStartTime"`
	TradingStartTime             int64  `bson:"trading_start_time" json:"tradingStartTime"`
	Treasury                     string `bson:"treasury" json:"treasury"`
	TierRoyaltyBps               uint64 `bson:"tier_royalty_bps" json:"tierRoyaltyBps"`
	DefaultRoyaltyReceiver       string `bson:"default_royalty_receiver" json:"defaultRoyaltyReceiver"`
	DefaultRoyaltyBps            uint64 `bson:"default_royalty_bps" json:"defaultRoyaltyBps"`
	Verifier                     string `bson:"verifier" json:"verifier"`
	BaseURI                      string `bson:"base_uri" json:"baseUri"`
	AppearanceVariants           uint32 `bson:"appearance_variants" json:"appearanceVariants"`
}

type ExtraMintDoc struct {
	Minter string                   `bson:"minter" json:"minter"`
	Config emdomain.Config          `bson:"config" json:"config"`
	Users  map[string]emdomain.User `bson:"users" json:"users"`
}

// EntropyDoc 是熵链进度，Prev 为十六进制。
type EntropyDoc struct {
	Prev string `bson:"prev" json:"prev"`
	Seq  uint64 `bson:"seq" json:"seq"`
}

// LedgerDoc 是王国单例与全部账本的整体文档，每次落库整体覆盖。
// map 的键统一为字符串（地块编号十进制、地址与角色十六进制）。
type LedgerDoc struct {
	ID        string              `bson:"_id" json:"-"`
	Version   uint64              `bson:"version" json:"version"`
	Kingdom   KingdomDoc          `bson:"kingdom" json:"kingdom"`
	Owners    map[string]string   `bson:"owners" json:"owners"`
	Approvals map[string]string   `bson:"approvals" json:"approvals"`
	Operators map[string][]string `bson:"operators" json:"operators"`
	Balances  map[string]string   `bson:"balances" json:"balances"`
	Roles     map[string][]string `bson:"roles" json:"roles"`
	Whitelist []string            `bson:"whitelist" json:"whitelist"`
	ExtraMint ExtraMintDoc        `bson:"extra_mint" json:"extraMint"`
	Entropy   EntropyDoc          `bson:"entropy" json:"entropy"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}

// SnapshotToLedgerDoc 只转换单例与账本部分，地块另行写入。
func SnapshotToLedgerDoc(s *state.PersistSnapshot) LedgerDoc {
	doc := LedgerDoc{
		ID:        LedgerDocID,
		Version:   s.Version,
		Owners:    make(map[string]string, len(s.Owners)),
		Approvals: make(map[string]string, len(s.Approvals)),
		Operators: make(map[string][]string, len(s.Operators)),
		Balances:  make(map[string]string, len(s.Balances)),
		Roles:     make(map[string][]string, len(s.Roles)),
		Whitelist: hexAll(s.Whitelist),
		Entropy:   EntropyDoc{Prev: common.Hash(s.Entropy.Prev).Hex(), Seq: s.Entropy.Seq},
		UpdatedAt: time.Now(),
	}
	if k := s.Kingdom; k != nil {
		doc.Kingdom = KingdomDoc{
			LandBasePrice:                domain.Wei(k.LandBasePrice).String(),
			LandPlotSupply:               k.LandPlotSupply,
			ReservedLands:                k.ReservedLands,
			TotalSupply:                  k.TotalSupply,
			NextLandID:                   uint64(k.NextLandID),
			TransferEnabled:              k.TransferEnabled,
			TransferEnabledForBelowTier5: k.TransferEnabledForBelowTier5,
			CooldownTime:                 k.CooldownTime,
			MaxTier:                      uint8(k.MaxTier),
			UpgradeStartTime:             k.UpgradeStartTime,
			TradingStartTime:             k.TradingStartTime,
			Treasury:                     k.Treasury.Hex(),
			TierRoyaltyBps:               k.TierRoyaltyBps,
			DefaultRoyaltyReceiver:       k.DefaultRoyaltyReceiver.Hex(),
			DefaultRoyaltyBps:            k.DefaultRoyaltyBps,
			Verifier:                     k.Verifier.Hex(),
			BaseURI:                      k.BaseURI,
			AppearanceVariants:           k.AppearanceVariants,
		}
	}
	for id, a := range s.Owners {
		doc.Owners[landKey(id)] = a.Hex()
	}
	for id, a := range s.Approvals {
		doc.Approvals[landKey(id)] = a.Hex()
	}
	for owner, ops := range s.Operators {
		doc.Operators[owner.Hex()] = hexAll(ops)
	}
	for a, v := range s.Balances {
		doc.Balances[a.Hex()] = domain.Wei(v).String()
	}
	for r, members := range s.Roles {
		doc.Roles[common.Hash(r).Hex()] = hexAll(members)
	}
	if em := s.ExtraMint; em != nil {
		doc.ExtraMint = ExtraMintDoc{
			Minter: em.Minter.Hex(),
			Config: em.Config,
			Users:  make(map[string]emdomain.User, len(em.Users)),
		}
		for a, u := range em.Users {
			doc.ExtraMint.Users[a.Hex()] = u
		}
	}
	return doc
}

// LedgerDocToSnapshot 还原单例与账本；lands 为库里的全部地块。
func LedgerDocToSnapshot(doc LedgerDoc, lands []domain.Land) (*state.PersistSnapshot, error) {
	base, err := parseWei(doc.Kingdom.LandBasePrice)
	if err != nil {
		return nil, err
	}
	kd := doc.Kingdom
	s := &state.PersistSnapshot{
		Version: doc.Version,
		Kingdom: &domain.Kingdom{
			LandBasePrice:                base,
			LandPlotSupply:               kd.LandPlotSupply,
			ReservedLands:                kd.ReservedLands,
			TotalSupply:                  kd.TotalSupply,
			NextLandID:                   domain.LandID(kd.NextLandID),
			TransferEnabled:              kd.TransferEnabled,
			TransferEnabledForBelowTier5: kd.TransferEnabledForBelowTier5,
			CooldownTime:                 kd.CooldownTime,
			MaxTier:                      domain.Tier(kd.MaxTier),
			UpgradeStartTime:             kd.UpgradeStartTime,
			TradingStartTime:             kd.TradingStartTime,
			Treasury:                     common.HexToAddress(kd.Treasury),
			TierRoyaltyBps:               kd.TierRoyaltyBps,
			DefaultRoyaltyReceiver:       common.HexToAddress(kd.DefaultRoyaltyReceiver),
			DefaultRoyaltyBps:            kd.DefaultRoyaltyBps,
			Verifier:                     common.HexToAddress(kd.Verifier),
			BaseURI:                      kd.BaseURI,
			AppearanceVariants:           kd.AppearanceVariants,
		},
		Lands:     lands,
		Owners:    make(map[domain.LandID]domain.Address, len(doc.Owners)),
		Approvals: make(map[domain.LandID]domain.Address, len(doc.Approvals)),
		Operators: make(map[domain.Address][]domain.Address, len(doc.Operators)),
		Balances:  make(map[domain.Address]*big.Int, len(doc.Balances)),
		Roles:     make(map[access.Role][]domain.Address, len(doc.Roles)),
		Whitelist: addrAll(doc.Whitelist),
	}
	for k, a := range doc.Owners {
		id, err := parseLandKey(k)
		if err != nil {
			return nil, err
		}
		s.Owners[id] = common.HexToAddress(a)
	}
	for k, a := range doc.Approvals {
		id, err := parseLandKey(k)
		if err != nil {
			return nil, err
		}
		s.Approvals[id] = common.HexToAddress(a)
	}
	for owner, ops := range doc.Operators {
		s.Operators[common.HexToAddress(owner)] = addrAll(ops)
	}
	for a, v := range doc.Balances {
		amount, err := parseWei(v)
		if err != nil {
			return nil, err
		}
		s.Balances[common.HexToAddress(a)] = amount
	}
	for r, members := range doc.Roles {
		s.Roles[access.Role(common.HexToHash(r))] = addrAll(members)
	}
	em := emdomain.NewLedger(common.HexToAddress(doc.ExtraMint.Minter))
	em.Config = doc.ExtraMint.Config
	for a, u := range doc.ExtraMint.Users {
		em.Users[common.HexToAddress(a)] = u
	}
	s.ExtraMint = em
	if doc.Entropy.Prev != "" {
		s.Entropy = state.Entropy{Prev: common.HexToHash(doc.Entropy.Prev), Seq: doc.Entropy.Seq}
	}
	return s, nil
}

func landKey(id domain.LandID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseLandKey(k string) (domain.LandID, error) {
	v, err := strconv.ParseUint(k, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid land key %q: %w", k, err)
	}
	return domain.LandID(v), nil
}

func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	return v, nil
}

func hexAll(in []domain.Address) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		out = append(out, a.Hex())
	}
	return out
}

func addrAll(in []string) []domain.Address {
	out := make([]domain.Address, 0, len(in))
	for _, s := range in {
		out = append(out, common.HexToAddress(s))
	}
	return out
}
