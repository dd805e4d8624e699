package state

import (
	emdomain "LandKingdom/internal/extramint/domain"
	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/ledger"
)

// Whitelist 是白名单操作员集合。
type Whitelist map[domain.Address]bool

func (w Whitelist) Contains(a domain.Address) bool {
	return w[a]
}

// State 是王国的全部可变状态，显式传给每个操作；同一时刻只有一个所有者（KingdomActor）。
type State struct {
	// Self 是注册表自身的收款地址，调用附带的金额先记到这里再结算。
	Self      domain.Address
	Kingdom   *domain.Kingdom
	Lands     map[domain.LandID]*domain.Land
	Ownership *ledger.Ownership
	Wallet    *ledger.Wallet
	Roles     *access.Policy
	Whitelist Whitelist
	ExtraMint *emdomain.Ledger
	// Entropy 只由调用入口推进，不单独标脏，随下一次落库一起写入。
	Entropy Entropy

	dirtyLands   map[domain.LandID]struct{}
	dirtyKingdom bool
}

// Options 是创世参数。
type Options struct {
	Self     domain.Address
	Deployer domain.Address
	Kingdom  domain.Kingdom
	// ExtraMintMinter 是额外铸造分配器代用户铸造时使用的身份。
	ExtraMintMinter domain.Address
}

// New 构造创世状态：部署者持有 DEFAULT_ADMIN。
func New(opts Options) *State {
	k := opts.Kingdom.Clone()
	k.NextLandID = domain.LandID(k.ReservedLands)
	if k.MaxTier == 0 {
		k.MaxTier = domain.MaxTier
	}
	if k.CooldownTime == 0 {
		k.CooldownTime = domain.CooldownSeconds
	}
	return &State{
		Self:         opts.Self,
		Kingdom:      k,
		Lands:        make(map[domain.LandID]*domain.Land),
		Ownership:    ledger.NewOwnership(),
		Wallet:       ledger.NewWallet(),
		Roles:        access.NewPolicy(opts.Deployer),
		Whitelist:    make(Whitelist),
		ExtraMint:    emdomain.NewLedger(opts.ExtraMintMinter),
		dirtyLands:   make(map[domain.LandID]struct{}),
		dirtyKingdom: true,
	}
}

// Land 只读访问；未铸造返回 nil。
func (s *State) Land(id domain.LandID) *domain.Land {
	return s.Lands[id]
}

// MutLand 返回可写记录并标脏；不存在时创建 tier=0 的占位记录。
func (s *State) MutLand(id domain.LandID) *domain.Land {
	l, ok := s.Lands[id]
	if !ok {
		l = &domain.Land{ID: id}
		s.Lands[id] = l
	}
	s.dirtyLands[id] = struct{}{}
	return l
}

// TouchKingdom 标记王国记录需要落库。
func (s *State) TouchKingdom() {
	s.dirtyKingdom = true
}

// TouchLedger 标记账本（授权/余额/额外铸造）需要落库；账本总是整体写入。
func (s *State) TouchLedger() {
	s.dirtyKingdom = true
}

// Clone 深拷贝全部状态（接收钩子按引用共享）。
func (s *State) Clone() *State {
	cp := &State{
		Self:         s.Self,
		Kingdom:      s.Kingdom.Clone(),
		Lands:        make(map[domain.LandID]*domain.Land, len(s.Lands)),
		Ownership:    s.Ownership.Clone(),
		Wallet:       s.Wallet.Clone(),
		Roles:        s.Roles.Clone(),
		Whitelist:    make(Whitelist, len(s.Whitelist)),
		ExtraMint:    s.ExtraMint.Clone(),
		Entropy:      s.Entropy,
		dirtyLands:   make(map[domain.LandID]struct{}, len(s.dirtyLands)),
		dirtyKingdom: s.dirtyKingdom,
	}
	for id, l := range s.Lands {
		cp.Lands[id] = l.Clone()
	}
	for a, v := range s.Whitelist {
		cp.Whitelist[a] = v
	}
	for id := range s.dirtyLands {
		cp.dirtyLands[id] = struct{}{}
	}
	return cp
}

// Atomic 以整次调用为单位执行 fn：fn 返回错误时状态恢复到调用前，包括嵌套调用的全部修改。
func (s *State) Atomic(fn func() error) error {
	saved := s.Clone()
	if err := fn(); err != nil {
		*s = *saved
		return err
	}
	return nil
}
