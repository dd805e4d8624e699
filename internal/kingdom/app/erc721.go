package app

import "LandKingdom/internal/kingdom/domain"

// TransferFrom 先过转移策略（锁/白名单），再做持有人/授权检查；成交挂单随之清除。
func (r *Registry) TransferFrom(call *domain.Call, from, to domain.Address, id domain.LandID) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	owner, err := r.st.Ownership.OwnerOf(id)
	if err != nil {
		return err
	}
	if err := r.gate().CheckTransfer(call.From, owner, r.st.Land(id).Tier); err != nil {
		return err
	}
	if !r.st.Ownership.IsAuthorized(owner, call.From, id) {
		return domain.ErrNotApprovedOrOwner.WithData("spender", call.From.Hex())
	}
	if from != owner {
		return domain.ErrIncorrectOwner.WithData("from", from.Hex())
	}
	if to == domain.ZeroAddress {
		return domain.ErrInvalidReceiver
	}
	r.st.Ownership.Move(owner, to, id)
	r.st.TouchLedger()
	r.st.MutLand(id).ClearListing()
	call.Emit(domain.TransferEvent(owner, to, id))
	return nil
}

// Approve 授权单块地；授权给零地址即撤销。
func (r *Registry) Approve(call *domain.Call, to domain.Address, id domain.LandID) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	owner, err := r.st.Ownership.OwnerOf(id)
	if err != nil {
		return err
	}
	if err := r.gate().CheckApprove(to, r.st.Land(id).Tier); err != nil {
		return err
	}
	if call.From != owner && !r.st.Ownership.IsApprovedForAll(owner, call.From) {
		return domain.ErrNotApprovedOrOwner.WithData("approver", call.From.Hex())
	}
	r.st.Ownership.Approve(to, id)
	r.st.TouchLedger()
	call.Emit(domain.ApprovalEvent(owner, to, id))
	return nil
}

func (r *Registry) SetApprovalForAll(call *domain.Call, operator domain.Address, approved bool) error {
	if err := nonPayable(call); err != nil {
		return err
	}
	if err := r.gate().CheckApprovalForAll(operator, approved); err != nil {
		return err
	}
	if operator == domain.ZeroAddress {
		return domain.ErrInvalidInput.WithData("operator", "zero address")
	}
	r.st.Ownership.SetApprovalForAll(call.From, operator, approved)
	r.st.TouchLedger()
	call.Emit(domain.ApprovalForAllEvent(call.From, operator, approved))
	return nil
}
