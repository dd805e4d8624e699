package ledger

import "LandKingdom/internal/kingdom/domain"

// Ownership 是资产所有权账本：持有人、单块授权与全局操作员授权。
// 只做记账，策略（锁定/白名单）由 transfer.Gate 决定。
type Ownership struct {
	owners    map[domain.LandID]domain.Address
	balances  map[domain.Address]uint64
	approvals map[domain.LandID]domain.Address
	operators map[domain.Address]map[domain.Address]bool
}

func NewOwnership() *Ownership {
	return &Ownership{
		owners:    make(map[domain.LandID]domain.Address),
		balances:  make(map[domain.Address]uint64),
		approvals: make(map[domain.LandID]domain.Address),
		operators: make(map[domain.Address]map[domain.Address]bool),
	}
}

// OwnerOf 返回持有人；未铸造时返回 ErrNonexistentToken。
func (o *Ownership) OwnerOf(id domain.LandID) (domain.Address, error) {
	owner, ok := o.owners[id]
	if !ok {
		return domain.ZeroAddress, domain.ErrNonexistentToken.WithData("landId", uint64(id))
	}
	return owner, nil
}

func (o *Ownership) Exists(id domain.LandID) bool {
	_, ok := o.owners[id]
	return ok
}

func (o *Ownership) BalanceOf(owner domain.Address) uint64 {
	return o.balances[owner]
}

func (o *Ownership) GetApproved(id domain.LandID) domain.Address {
	return o.approvals[id]
}

func (o *Ownership) IsApprovedForAll(owner, operator domain.Address) bool {
	return o.operators[owner][operator]
}

// IsAuthorized 报告 spender 能否代 owner 移动 id。
func (o *Ownership) IsAuthorized(owner, spender domain.Address, id domain.LandID) bool {
	return spender == owner || o.IsApprovedForAll(owner, spender) || o.approvals[id] == spender && spender != domain.ZeroAddress
}

// Mint 登记新资产，调用方保证 id 未被占用。
func (o *Ownership) Mint(to domain.Address, id domain.LandID) {
	o.owners[id] = to
	o.balances[to]++
}

// Move 变更持有人并清除单块授权。
func (o *Ownership) Move(from, to domain.Address, id domain.LandID) {
	delete(o.approvals, id)
	o.balances[from]--
	if o.balances[from] == 0 {
		delete(o.balances, from)
	}
	o.owners[id] = to
	o.balances[to]++
}

func (o *Ownership) Approve(to domain.Address, id domain.LandID) {
	if to == domain.ZeroAddress {
		delete(o.approvals, id)
		return
	}
	o.approvals[id] = to
}

func (o *Ownership) SetApprovalForAll(owner, operator domain.Address, approved bool) {
	if !approved {
		if ops, ok := o.operators[owner]; ok {
			delete(ops, operator)
			if len(ops) == 0 {
				delete(o.operators, owner)
			}
		}
		return
	}
	ops, ok := o.operators[owner]
	if !ok {
		ops = make(map[domain.Address]bool)
		o.operators[owner] = ops
	}
	ops[operator] = true
}

// Owners 按 id 遍历所有持有关系，用于快照。
func (o *Ownership) Owners() map[domain.LandID]domain.Address {
	out := make(map[domain.LandID]domain.Address, len(o.owners))
	for id, a := range o.owners {
		out[id] = a
	}
	return out
}

func (o *Ownership) Approvals() map[domain.LandID]domain.Address {
	out := make(map[domain.LandID]domain.Address, len(o.approvals))
	for id, a := range o.approvals {
		out[id] = a
	}
	return out
}

// Operators 返回 (owner, operator) 全局授权对。
func (o *Ownership) Operators() map[domain.Address][]domain.Address {
	out := make(map[domain.Address][]domain.Address, len(o.operators))
	for owner, ops := range o.operators {
		for op := range ops {
			out[owner] = append(out[owner], op)
		}
	}
	return out
}

func (o *Ownership) Clone() *Ownership {
	cp := NewOwnership()
	for id, a := range o.owners {
		cp.owners[id] = a
	}
	for a, n := range o.balances {
		cp.balances[a] = n
	}
	for id, a := range o.approvals {
		cp.approvals[id] = a
	}
	for owner, ops := range o.operators {
		m := make(map[domain.Address]bool, len(ops))
		for op, v := range ops {
			m[op] = v
		}
		cp.operators[owner] = m
	}
	return cp
}
