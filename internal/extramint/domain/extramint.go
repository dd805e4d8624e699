package domain

import kd "LandKingdom/internal/kingdom/domain"

// User 是单个地址的名额计数，恒有 Minted ≤ Assigned。
type User struct {
	Assigned uint64 `json:"assigned"`
	Minted   uint64 `json:"minted"`
}

func (u User) Available() uint64 {
	if u.Minted >= u.Assigned {
		return 0
	}
	return u.Assigned - u.Minted
}

// Config 是额外铸造的全局配置，恒有 TotalMinted ≤ TotalSupply。
type Config struct {
	TotalSupply uint64 `json:"totalSupply"`
	TotalMinted uint64 `json:"totalMinted"`
	MintEnabled bool   `json:"mintEnabled"`
	MintEndTime int64  `json:"mintEndTime"`
}

// Ledger 是额外铸造的全部状态。Minter 是它代用户铸造时使用的身份（需持有 MINTER 角色）。
type Ledger struct {
	Minter kd.Address
	Config Config
	Users  map[kd.Address]User
}

func NewLedger(minter kd.Address) *Ledger {
	return &Ledger{Minter: minter, Users: make(map[kd.Address]User)}
}

func (l *Ledger) User(a kd.Address) User {
	return l.Users[a]
}

func (l *Ledger) Clone() *Ledger {
	cp := &Ledger{Minter: l.Minter, Config: l.Config, Users: make(map[kd.Address]User, len(l.Users))}
	for a, u := range l.Users {
		cp.Users[a] = u
	}
	return cp
}
