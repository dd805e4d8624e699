package state

import (
	"math/big"
	"sort"

	emdomain "LandKingdom/internal/extramint/domain"
	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
)

// PersistSnapshot 是一次落库所需的数据；Lands 只包含上次落库后变化过的地块。
type PersistSnapshot struct {
	Version        uint64
	Kingdom        *domain.Kingdom
	Lands          []domain.Land
	Owners         map[domain.LandID]domain.Address
	Approvals      map[domain.LandID]domain.Address
	Operators      map[domain.Address][]domain.Address
	Balances       map[domain.Address]*big.Int
	Roles          map[access.Role][]domain.Address
	Whitelist      []domain.Address
	ExtraMint      *emdomain.Ledger
	Entropy        Entropy
	KingdomChanged bool
}

func (s *State) Dirty() bool {
	return s.dirtyKingdom || len(s.dirtyLands) > 0
}

// BuildPersistSnapshot 生成快照并清除脏标记；状态未变时返回 false。
func (s *State) BuildPersistSnapshot(version uint64) (*PersistSnapshot, bool) {
	if !s.Dirty() {
		return nil, false
	}
	snap := &PersistSnapshot{
		Version:        version,
		Kingdom:        s.Kingdom.Clone(),
		Owners:         s.Ownership.Owners(),
		Approvals:      s.Ownership.Approvals(),
		Operators:      s.Ownership.Operators(),
		Balances:       s.Wallet.Balances(),
		Roles:          s.Roles.Members(),
		ExtraMint:      s.ExtraMint.Clone(),
		Entropy:        s.Entropy,
		KingdomChanged: s.dirtyKingdom,
	}
	ids := make([]domain.LandID, 0, len(s.dirtyLands))
	for id := range s.dirtyLands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if l := s.Lands[id]; l != nil {
			snap.Lands = append(snap.Lands, *l)
		}
	}
	for a, ok := range s.Whitelist {
		if ok {
			snap.Whitelist = append(snap.Whitelist, a)
		}
	}
	s.dirtyLands = make(map[domain.LandID]struct{})
	s.dirtyKingdom = false
	return snap, true
}

// MarkDirty 在落库失败时把快照里的地块重新标脏，等待下次重试。
func (s *State) MarkDirty(snap *PersistSnapshot) {
	if snap == nil {
		return
	}
	for _, l := range snap.Lands {
		s.dirtyLands[l.ID] = struct{}{}
	}
	s.dirtyKingdom = true
}

// Restore 从持久化数据重建状态（启动加载）。
func Restore(opts Options, snap *PersistSnapshot) *State {
	s := New(opts)
	if snap == nil {
		return s
	}
	if snap.Kingdom != nil {
		s.Kingdom = snap.Kingdom.Clone()
	}
	for _, l := range snap.Lands {
		cp := l
		s.Lands[l.ID] = &cp
	}
	ids := make([]domain.LandID, 0, len(snap.Owners))
	for id := range snap.Owners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s.Ownership.Mint(snap.Owners[id], id)
	}
	for id, a := range snap.Approvals {
		s.Ownership.Approve(a, id)
	}
	for owner, ops := range snap.Operators {
		for _, op := range ops {
			s.Ownership.SetApprovalForAll(owner, op, true)
		}
	}
	for a, v := range snap.Balances {
		s.Wallet.Credit(a, v)
	}
	if len(snap.Roles) > 0 {
		s.Roles = access.RestorePolicy(opts.Deployer, snap.Roles)
	}
	for _, a := range snap.Whitelist {
		s.Whitelist[a] = true
	}
	if snap.ExtraMint != nil {
		s.ExtraMint = snap.ExtraMint.Clone()
	}
	s.Entropy = snap.Entropy
	s.dirtyLands = make(map[domain.LandID]struct{})
	s.dirtyKingdom = false
	return s
}

// Absorb 把更旧快照里本快照没有的地块并入，保证被覆盖的快照不丢地块。
func (p *PersistSnapshot) Absorb(older *PersistSnapshot) {
	if older == nil || older == p {
		return
	}
	seen := make(map[domain.LandID]struct{}, len(p.Lands))
	for _, l := range p.Lands {
		seen[l.ID] = struct{}{}
	}
	for _, l := range older.Lands {
		if _, ok := seen[l.ID]; !ok {
			p.Lands = append(p.Lands, l)
		}
	}
	sort.Slice(p.Lands, func(i, j int) bool { return p.Lands[i].ID < p.Lands[j].ID })
	p.KingdomChanged = p.KingdomChanged || older.KingdomChanged
}
