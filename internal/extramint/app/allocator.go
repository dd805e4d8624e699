package app

import (
	"math"

	"LandKingdom/internal/extramint/domain"
	"LandKingdom/internal/kingdom/access"
	kd "LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/state"
)

// Minter 是注册表的铸造入口（需要 MINTER 角色）。
type Minter interface {
	Mint(call *kd.Call, to kd.Address, hint kd.LandID) (kd.LandID, error)
}

// Allocator 管理额外铸造名额，并通过 Minter 为用户铸造；从不直接改写地块状态。
type Allocator struct {
	st     *state.State
	minter Minter
}

func NewAllocator(st *state.State, minter Minter) *Allocator {
	return &Allocator{st: st, minter: minter}
}

func (a *Allocator) ledger() *domain.Ledger {
	return a.st.ExtraMint
}

func (a *Allocator) admin(call *kd.Call) error {
	if err := a.st.Roles.Check(access.DefaultAdmin, call.From); err != nil {
		return err
	}
	if call.Paid().Sign() > 0 {
		return kd.ErrEtherNotAccepted
	}
	return nil
}

// AssignSlots 逐个累加名额，数组长度必须一致；任一累加溢出则整批不生效。
func (a *Allocator) AssignSlots(call *kd.Call, users []kd.Address, slots []uint64) error {
	if err := a.admin(call); err != nil {
		return err
	}
	if len(users) != len(slots) {
		return domain.ErrInvalidInput.WithDataMap(map[string]any{"users": len(users), "slots": len(slots)})
	}
	l := a.ledger()
	next := make(map[kd.Address]uint64, len(users))
	for i, u := range users {
		cur, ok := next[u]
		if !ok {
			cur = l.Users[u].Assigned
		}
		if slots[i] > math.MaxUint64-cur {
			return domain.ErrInvalidInput.WithDataMap(map[string]any{"user": u.Hex(), "assign": slots[i]})
		}
		next[u] = cur + slots[i]
	}
	for u, assigned := range next {
		cur := l.Users[u]
		cur.Assigned = assigned
		l.Users[u] = cur
	}
	a.st.TouchLedger()
	return nil
}

// RemoveSlots 逐个扣减名额；扣到低于已铸造数视为非法输入。
func (a *Allocator) RemoveSlots(call *kd.Call, users []kd.Address, slots []uint64) error {
	if err := a.admin(call); err != nil {
		return err
	}
	if len(users) != len(slots) {
		return domain.ErrInvalidInput.WithDataMap(map[string]any{"users": len(users), "slots": len(slots)})
	}
	l := a.ledger()
	for i, u := range users {
		cur := l.Users[u]
		if slots[i] > cur.Assigned || cur.Assigned-slots[i] < cur.Minted {
			return domain.ErrInvalidInput.WithDataMap(map[string]any{"user": u.Hex(), "remove": slots[i]})
		}
		cur.Assigned -= slots[i]
		l.Users[u] = cur
	}
	a.st.TouchLedger()
	return nil
}

func (a *Allocator) SetTotalSupply(call *kd.Call, n uint64) error {
	if err := a.admin(call); err != nil {
		return err
	}
	l := a.ledger()
	if n < l.Config.TotalMinted {
		return domain.ErrInvalidInput.WithDataMap(map[string]any{"totalSupply": n, "totalMinted": l.Config.TotalMinted})
	}
	l.Config.TotalSupply = n
	a.st.TouchLedger()
	return nil
}

func (a *Allocator) SetMintEnabled(call *kd.Call, enabled bool) error {
	if err := a.admin(call); err != nil {
		return err
	}
	a.ledger().Config.MintEnabled = enabled
	a.st.TouchLedger()
	return nil
}

func (a *Allocator) SetMintEndTime(call *kd.Call, ts int64) error {
	if err := a.admin(call); err != nil {
		return err
	}
	a.ledger().Config.MintEndTime = ts
	a.st.TouchLedger()
	return nil
}

// SetMinter 切换代用户铸造时使用的身份；新身份需持有 MINTER 角色才能铸造。
func (a *Allocator) SetMinter(call *kd.Call, minter kd.Address) error {
	if err := a.admin(call); err != nil {
		return err
	}
	if minter == (kd.Address{}) {
		return domain.ErrInvalidInput.WithData("minter", minter.Hex())
	}
	a.ledger().Minter = minter
	a.st.TouchLedger()
	return nil
}

// Minter 返回当前的铸造身份。
func (a *Allocator) Minter() kd.Address {
	return a.ledger().Minter
}

// Mint 为调用方铸造 count 块地：先扣名额与总量，再逐块调用铸造入口。
func (a *Allocator) Mint(call *kd.Call, count uint64) ([]kd.LandID, error) {
	if call.Paid().Sign() > 0 {
		return nil, kd.ErrEtherNotAccepted
	}
	if count == 0 {
		return nil, domain.ErrInvalidInput.WithData("count", 0)
	}
	l := a.ledger()
	cfg := l.Config
	if !cfg.MintEnabled {
		return nil, domain.ErrMintNotEnabled
	}
	if call.Now > cfg.MintEndTime {
		return nil, domain.ErrMintExpired.WithData("mintEndTime", cfg.MintEndTime)
	}
	user := l.Users[call.From]
	if user.Available() < count {
		return nil, domain.ErrExceedAvailableTokens.WithDataMap(map[string]any{"available": user.Available(), "count": count})
	}
	if cfg.TotalMinted+count > cfg.TotalSupply {
		return nil, domain.ErrNotEnoughTokens.WithDataMap(map[string]any{"remaining": cfg.TotalSupply - cfg.TotalMinted, "count": count})
	}

	user.Minted += count
	l.Users[call.From] = user
	l.Config.TotalMinted += count
	a.st.TouchLedger()

	sub := call.As(l.Minter)
	ids := make([]kd.LandID, 0, count)
	for i := uint64(0); i < count; i++ {
		id, err := a.minter.Mint(sub, call.From, 0)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	call.Emit(kd.ExtraMintedEvent(call.From, count))
	return ids, nil
}

// User 返回用户名额视图。
func (a *Allocator) User(u kd.Address) domain.User {
	return a.ledger().User(u)
}

func (a *Allocator) Config() domain.Config {
	return a.ledger().Config
}

// TotalMinted 是已通过额外铸造发出的总数。
func (a *Allocator) TotalMinted() uint64 {
	return a.ledger().Config.TotalMinted
}
