package actors

import (
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
)

type KingdomHandler struct{}

var KH = &KingdomHandler{}

// ---- 地块 ----

func (h *KingdomHandler) HandleMint(p *KingdomActor, call *domain.Call, req *messages.Mint) (any, error) {
	return p.registry.Mint(call, req.To, req.Hint)
}

func (h *KingdomHandler) HandleMintBatch(p *KingdomActor, call *domain.Call, req *messages.MintBatch) (any, error) {
	return p.registry.MintBatch(call, req.To, req.Hints)
}

func (h *KingdomHandler) HandlePurchase(p *KingdomActor, call *domain.Call, req *messages.Purchase) (any, error) {
	return nil, p.registry.Purchase(call, req.Auth)
}

func (h *KingdomHandler) HandleUpgrade(p *KingdomActor, call *domain.Call, req *messages.Upgrade) (any, error) {
	return nil, p.registry.Upgrade(call, req.Auth)
}

func (h *KingdomHandler) HandleListForSale(p *KingdomActor, call *domain.Call, req *messages.ListForSale) (any, error) {
	return nil, p.registry.ListForSale(call, req.LandID, req.Enabled, req.Price)
}

func (h *KingdomHandler) HandleSetName(p *KingdomActor, call *domain.Call, req *messages.SetName) (any, error) {
	return nil, p.registry.SetName(call, req.Auth)
}

func (h *KingdomHandler) HandleSetLandStats(p *KingdomActor, call *domain.Call, req *messages.SetLandStats) (any, error) {
	return nil, p.registry.SetLandStats(call, req.LandID, req.Stats)
}

func (h *KingdomHandler) HandleSetLandAppearance(p *KingdomActor, call *domain.Call, req *messages.SetLandAppearance) (any, error) {
	return nil, p.registry.SetLandAppearance(call, req.LandID, req.Appearance)
}

func (h *KingdomHandler) HandleTransferFrom(p *KingdomActor, call *domain.Call, req *messages.TransferFrom) (any, error) {
	return nil, p.registry.TransferFrom(call, req.Owner, req.To, req.LandID)
}

func (h *KingdomHandler) HandleApprove(p *KingdomActor, call *domain.Call, req *messages.Approve) (any, error) {
	return nil, p.registry.Approve(call, req.To, req.LandID)
}

func (h *KingdomHandler) HandleSetApprovalForAll(p *KingdomActor, call *domain.Call, req *messages.SetApprovalForAll) (any, error) {
	return nil, p.registry.SetApprovalForAll(call, req.Operator, req.Approved)
}

func (h *KingdomHandler) HandleReceive(p *KingdomActor, call *domain.Call, _ *messages.Receive) (any, error) {
	return nil, p.registry.Receive(call)
}

// ---- 管理 ----

func (h *KingdomHandler) HandleSetLandBasePrice(p *KingdomActor, call *domain.Call, req *messages.SetLandBasePrice) (any, error) {
	return nil, p.registry.SetLandBasePrice(call, req.Price)
}

func (h *KingdomHandler) HandleSetURI(p *KingdomActor, call *domain.Call, req *messages.SetURI) (any, error) {
	return nil, p.registry.SetURI(call, req.BaseURI)
}

func (h *KingdomHandler) HandleSetVerifier(p *KingdomActor, call *domain.Call, req *messages.SetVerifier) (any, error) {
	return nil, p.registry.SetVerifier(call, req.Verifier)
}

func (h *KingdomHandler) HandleSetDefaultRoyalty(p *KingdomActor, call *domain.Call, req *messages.SetDefaultRoyalty) (any, error) {
	return nil, p.registry.SetDefaultRoyalty(call, req.Receiver, req.Bps)
}

func (h *KingdomHandler) HandleSetTierRoyaltyBps(p *KingdomActor, call *domain.Call, req *messages.SetTierRoyaltyBps) (any, error) {
	return nil, p.registry.SetTierRoyaltyBps(call, req.Bps)
}

func (h *KingdomHandler) HandleSetTransferEnabled(p *KingdomActor, call *domain.Call, req *messages.SetTransferEnabled) (any, error) {
	return nil, p.registry.SetTransferEnabled(call, req.Enabled, req.BelowMaxTier)
}

func (h *KingdomHandler) HandleSetWhitelistedApprover(p *KingdomActor, call *domain.Call, req *messages.SetWhitelistedApprover) (any, error) {
	return nil, p.registry.SetWhitelistedApprover(call, req.Approver, req.Allowed)
}

func (h *KingdomHandler) HandleSetStartTime(p *KingdomActor, call *domain.Call, req *messages.SetStartTime) (any, error) {
	return nil, p.registry.SetStartTime(call, req.UpgradeStart, req.TradingStart)
}

func (h *KingdomHandler) HandleGrantRole(p *KingdomActor, call *domain.Call, req *messages.GrantRole) (any, error) {
	return nil, p.registry.GrantRole(call, req.Role, req.Account)
}

func (h *KingdomHandler) HandleRevokeRole(p *KingdomActor, call *domain.Call, req *messages.RevokeRole) (any, error) {
	return nil, p.registry.RevokeRole(call, req.Role, req.Account)
}

// HandleFund 不检查调用方，接口层只在 dev 模式下放行。
func (h *KingdomHandler) HandleFund(p *KingdomActor, _ *domain.Call, req *messages.Fund) (any, error) {
	return nil, p.registry.Fund(req.To, req.Amount)
}

// ---- 额外铸造 ----

func (h *KingdomHandler) HandleAssignSlots(p *KingdomActor, call *domain.Call, req *messages.AssignSlots) (any, error) {
	return nil, p.allocator.AssignSlots(call, req.Users, req.Slots)
}

func (h *KingdomHandler) HandleRemoveSlots(p *KingdomActor, call *domain.Call, req *messages.RemoveSlots) (any, error) {
	return nil, p.allocator.RemoveSlots(call, req.Users, req.Slots)
}

func (h *KingdomHandler) HandleSetExtraTotalSupply(p *KingdomActor, call *domain.Call, req *messages.SetExtraTotalSupply) (any, error) {
	return nil, p.allocator.SetTotalSupply(call, req.TotalSupply)
}

func (h *KingdomHandler) HandleSetExtraMintEnabled(p *KingdomActor, call *domain.Call, req *messages.SetExtraMintEnabled) (any, error) {
	return nil, p.allocator.SetMintEnabled(call, req.Enabled)
}

func (h *KingdomHandler) HandleSetExtraMintEndTime(p *KingdomActor, call *domain.Call, req *messages.SetExtraMintEndTime) (any, error) {
	return nil, p.allocator.SetMintEndTime(call, req.EndTime)
}

func (h *KingdomHandler) HandleSetExtraMintMinter(p *KingdomActor, call *domain.Call, req *messages.SetExtraMintMinter) (any, error) {
	return nil, p.allocator.SetMinter(call, req.Minter)
}

func (h *KingdomHandler) HandleExtraMint(p *KingdomActor, call *domain.Call, req *messages.ExtraMint) (any, error) {
	return p.allocator.Mint(call, req.Count)
}

// ---- 查询 ----

func (h *KingdomHandler) HandleGetLand(p *KingdomActor, req *messages.GetLand) (any, error) {
	return p.registry.GetLand(req.LandID)
}

func (h *KingdomHandler) HandleGetKingdom(p *KingdomActor, _ *messages.GetKingdom) (any, error) {
	return p.registry.GetKingdom(), nil
}

func (h *KingdomHandler) HandleRoyaltyInfo(p *KingdomActor, req *messages.RoyaltyInfo) (any, error) {
	receiver, amount := p.registry.RoyaltyInfo(req.LandID, req.SalePrice)
	return messages.RoyaltyInfoResult{Receiver: receiver, Amount: amount}, nil
}

func (h *KingdomHandler) HandleOwnerOf(p *KingdomActor, req *messages.OwnerOf) (any, error) {
	return p.registry.OwnerOf(req.LandID)
}

func (h *KingdomHandler) HandleBalanceOf(p *KingdomActor, req *messages.BalanceOf) (any, error) {
	return p.registry.BalanceOf(req.Owner), nil
}

func (h *KingdomHandler) HandleGetApproved(p *KingdomActor, req *messages.GetApproved) (any, error) {
	return p.registry.GetApproved(req.LandID)
}

func (h *KingdomHandler) HandleIsApprovedForAll(p *KingdomActor, req *messages.IsApprovedForAll) (any, error) {
	return p.registry.IsApprovedForAll(req.Owner, req.Operator), nil
}

func (h *KingdomHandler) HandleTokenURI(p *KingdomActor, req *messages.TokenURI) (any, error) {
	return p.registry.TokenURI(req.LandID)
}

func (h *KingdomHandler) HandleOwner(p *KingdomActor, _ *messages.Owner) (any, error) {
	return p.registry.Owner(), nil
}

func (h *KingdomHandler) HandleHasRole(p *KingdomActor, req *messages.HasRole) (any, error) {
	return p.registry.HasRole(req.Role, req.Account), nil
}

func (h *KingdomHandler) HandleWalletBalance(p *KingdomActor, req *messages.WalletBalance) (any, error) {
	return p.registry.WalletBalance(req.Address), nil
}

func (h *KingdomHandler) HandleExtraMintUser(p *KingdomActor, req *messages.ExtraMintUser) (any, error) {
	return p.allocator.User(req.User), nil
}

func (h *KingdomHandler) HandleExtraMintConfig(p *KingdomActor, _ *messages.ExtraMintConfig) (any, error) {
	return messages.ExtraMintConfigResult{Config: p.allocator.Config(), Minter: p.allocator.Minter()}, nil
}
