package domain

// LandID 是地块编号，合法区间 [0, landPlotSupply)。
type LandID uint64

// Tier 0 表示未铸造，1..MaxTier 为成长阶段。
type Tier uint8

// Stats 是地块四项属性，任何升阶只增不减。
type Stats struct {
	Fertility uint32 `json:"fertility"`
	Wealth    uint32 `json:"wealth"`
	Defense   uint32 `json:"defense"`
	Prestige  uint32 `json:"prestige"`
}

func (s Stats) Total() uint32 {
	return s.Fertility + s.Wealth + s.Defense + s.Prestige
}

func (s Stats) Add(d Stats) Stats {
	return Stats{
		Fertility: s.Fertility + d.Fertility,
		Wealth:    s.Wealth + d.Wealth,
		Defense:   s.Defense + d.Defense,
		Prestige:  s.Prestige + d.Prestige,
	}
}

// Land 是单块地的可变记录；持有人在所有权账本里，不在这里冗余。
type Land struct {
	ID               LandID
	Tier             Tier
	Stats            Stats
	Appearance       uint32
	Name             string
	ListedForSale    bool
	Price            Wei256
	LastTierChangeAt int64
}

func (l *Land) Minted() bool {
	return l != nil && l.Tier > 0
}

// ClearListing 在任意所有权变化时调用。
func (l *Land) ClearListing() {
	l.ListedForSale = false
	l.Price = Wei256{}
}

func (l *Land) Clone() *Land {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}
