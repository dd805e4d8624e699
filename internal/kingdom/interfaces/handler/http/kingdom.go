package http

import (
	"context"
	"math/big"
	"strconv"

	"LandKingdom/internal/kingdom/access"
	kapp "LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/internal/shared/security"
	"LandKingdom/internal/shared/serverconfig"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/logx"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// Kingdom 是接口层对王国运行时的依赖。
type Kingdom interface {
	Exec(ctx context.Context, cmd messages.Command) (*messages.Reply, error)
	Query(ctx context.Context, q any) (any, error)
}

type HttpHandler struct {
	kingdom Kingdom
	dev     serverconfig.DevConfig
	log     logx.Logger
}

func NewHttpHandler(k Kingdom, dev serverconfig.DevConfig, log logx.Logger) *HttpHandler {
	if log == nil {
		log = logx.Nop()
	}
	return &HttpHandler{kingdom: k, dev: dev, log: log}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/kingdom")

	// 只读
	g.GET("", h.GetKingdom)
	g.GET("/owner", h.Owner)
	g.GET("/lands/:id", h.GetLand)
	g.GET("/lands/:id/owner", h.OwnerOf)
	g.GET("/lands/:id/approved", h.GetApproved)
	g.GET("/lands/:id/uri", h.TokenURI)
	g.GET("/lands/:id/royalty", h.RoyaltyInfo)
	g.GET("/accounts/:addr/balance", h.BalanceOf)
	g.GET("/accounts/:addr/wallet", h.WalletBalance)
	g.GET("/accounts/:addr/operators/:operator", h.IsApprovedForAll)
	g.GET("/roles/:role/:addr", h.HasRole)
	g.GET("/extramint", h.ExtraMintConfig)
	g.GET("/extramint/users/:addr", h.ExtraMintUser)

	w := g.Group("", Auth())

	w.POST("/lands/mint", command(h, func(_ *gin.Context, o messages.Origin, r *mintReq) (messages.Command, error) {
		return &messages.Mint{Origin: o, To: r.To, Hint: domain.LandID(r.Hint)}, nil
	}))
	w.POST("/lands/mint-batch", command(h, func(_ *gin.Context, o messages.Origin, r *mintBatchReq) (messages.Command, error) {
		return &messages.MintBatch{Origin: o, To: r.To, Hints: landIDs(r.Hints)}, nil
	}))
	w.POST("/lands/:id/purchase", command(h, func(c *gin.Context, o messages.Origin, r *signedReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.Purchase{Origin: o, Auth: r.toAuth(id)}, err
	}))
	w.POST("/lands/:id/upgrade", command(h, func(c *gin.Context, o messages.Origin, r *signedReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.Upgrade{Origin: o, Auth: r.toAuth(id)}, err
	}))
	w.POST("/lands/:id/name", command(h, func(c *gin.Context, o messages.Origin, r *signedReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.SetName{Origin: o, Auth: r.toAuth(id)}, err
	}))
	w.POST("/lands/:id/listing", command(h, func(c *gin.Context, o messages.Origin, r *listingReq) (messages.Command, error) {
		id, err := pathLand(c)
		if err != nil {
			return nil, err
		}
		price, ok := parseWei(r.Price)
		if !ok {
			return nil, errx.ErrReqParam.WithData("price", r.Price)
		}
		return &messages.ListForSale{Origin: o, LandID: id, Enabled: r.Enabled, Price: price}, nil
	}))
	w.POST("/lands/:id/stats", command(h, func(c *gin.Context, o messages.Origin, r *statsReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.SetLandStats{Origin: o, LandID: id, Stats: r.Stats}, err
	}))
	w.POST("/lands/:id/appearance", command(h, func(c *gin.Context, o messages.Origin, r *appearanceReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.SetLandAppearance{Origin: o, LandID: id, Appearance: r.Appearance}, err
	}))
	w.POST("/lands/:id/transfer", command(h, func(c *gin.Context, o messages.Origin, r *transferReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.TransferFrom{Origin: o, Owner: r.From, To: r.To, LandID: id}, err
	}))
	w.POST("/lands/:id/approve", command(h, func(c *gin.Context, o messages.Origin, r *approveReq) (messages.Command, error) {
		id, err := pathLand(c)
		return &messages.Approve{Origin: o, To: r.To, LandID: id}, err
	}))
	w.POST("/operators", command(h, func(_ *gin.Context, o messages.Origin, r *operatorReq) (messages.Command, error) {
		return &messages.SetApprovalForAll{Origin: o, Operator: r.Operator, Approved: r.Approved}, nil
	}))
	w.POST("/receive", command(h, func(_ *gin.Context, o messages.Origin, _ *receiveReq) (messages.Command, error) {
		return &messages.Receive{Origin: o}, nil
	}))

	admin := w.Group("/admin")
	admin.POST("/base-price", command(h, func(_ *gin.Context, o messages.Origin, r *priceReq) (messages.Command, error) {
		price, ok := parseWei(r.Price)
		if !ok {
			return nil, errx.ErrReqParam.WithData("price", r.Price)
		}
		return &messages.SetLandBasePrice{Origin: o, Price: price}, nil
	}))
	admin.POST("/uri", command(h, func(_ *gin.Context, o messages.Origin, r *uriReq) (messages.Command, error) {
		return &messages.SetURI{Origin: o, BaseURI: r.BaseURI}, nil
	}))
	admin.POST("/verifier", command(h, func(_ *gin.Context, o messages.Origin, r *verifierReq) (messages.Command, error) {
		return &messages.SetVerifier{Origin: o, Verifier: r.Verifier}, nil
	}))
	admin.POST("/default-royalty", command(h, func(_ *gin.Context, o messages.Origin, r *royaltyReq) (messages.Command, error) {
		return &messages.SetDefaultRoyalty{Origin: o, Receiver: r.Receiver, Bps: r.Bps}, nil
	}))
	admin.POST("/tier-royalty", command(h, func(_ *gin.Context, o messages.Origin, r *bpsReq) (messages.Command, error) {
		return &messages.SetTierRoyaltyBps{Origin: o, Bps: r.Bps}, nil
	}))
	admin.POST("/transfer-policy", command(h, func(_ *gin.Context, o messages.Origin, r *transferPolicyReq) (messages.Command, error) {
		return &messages.SetTransferEnabled{Origin: o, Enabled: r.Enabled, BelowMaxTier: r.BelowMaxTier}, nil
	}))
	admin.POST("/approvers", command(h, func(_ *gin.Context, o messages.Origin, r *approverReq) (messages.Command, error) {
		return &messages.SetWhitelistedApprover{Origin: o, Approver: r.Approver, Allowed: r.Allowed}, nil
	}))
	admin.POST("/start-time", command(h, func(_ *gin.Context, o messages.Origin, r *startTimeReq) (messages.Command, error) {
		return &messages.SetStartTime{Origin: o, UpgradeStart: r.UpgradeStart, TradingStart: r.TradingStart}, nil
	}))
	admin.POST("/roles/grant", command(h, func(_ *gin.Context, o messages.Origin, r *roleReq) (messages.Command, error) {
		role, err := parseRole(r.Role)
		return &messages.GrantRole{Origin: o, Role: role, Account: r.Account}, err
	}))
	admin.POST("/roles/revoke", command(h, func(_ *gin.Context, o messages.Origin, r *roleReq) (messages.Command, error) {
		role, err := parseRole(r.Role)
		return &messages.RevokeRole{Origin: o, Role: role, Account: r.Account}, err
	}))

	em := w.Group("/extramint")
	em.POST("/slots/assign", command(h, func(_ *gin.Context, o messages.Origin, r *slotsReq) (messages.Command, error) {
		return &messages.AssignSlots{Origin: o, Users: r.Users, Slots: r.Slots}, nil
	}))
	em.POST("/slots/remove", command(h, func(_ *gin.Context, o messages.Origin, r *slotsReq) (messages.Command, error) {
		return &messages.RemoveSlots{Origin: o, Users: r.Users, Slots: r.Slots}, nil
	}))
	em.POST("/total-supply", command(h, func(_ *gin.Context, o messages.Origin, r *supplyReq) (messages.Command, error) {
		return &messages.SetExtraTotalSupply{Origin: o, TotalSupply: r.TotalSupply}, nil
	}))
	em.POST("/enabled", command(h, func(_ *gin.Context, o messages.Origin, r *enabledReq) (messages.Command, error) {
		return &messages.SetExtraMintEnabled{Origin: o, Enabled: r.Enabled}, nil
	}))
	em.POST("/end-time", command(h, func(_ *gin.Context, o messages.Origin, r *endTimeReq) (messages.Command, error) {
		return &messages.SetExtraMintEndTime{Origin: o, EndTime: r.EndTime}, nil
	}))
	em.POST("/minter", command(h, func(_ *gin.Context, o messages.Origin, r *minterReq) (messages.Command, error) {
		return &messages.SetExtraMintMinter{Origin: o, Minter: r.Minter}, nil
	}))
	em.POST("/mint", command(h, func(_ *gin.Context, o messages.Origin, r *extraMintReq) (messages.Command, error) {
		return &messages.ExtraMint{Origin: o, Count: r.Count}, nil
	}))

	if h.dev.Enabled {
		d := g.Group("/dev")
		d.POST("/token", h.DevToken)
		d.POST("/faucet", h.DevFaucet)
	}
}

// command 绑定请求体、解析附带金额并组装写命令。
func command[Req any](h *HttpHandler, build func(c *gin.Context, o messages.Origin, req *Req) (messages.Command, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := new(Req)
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(req); err != nil {
				h.error(c, errx.ErrReqParam.WithCause(err))
				return
			}
		}
		o := messages.Origin{From: caller(c), Value: new(big.Int)}
		if p, ok := any(req).(payable); ok {
			v, ok := parseWei(p.value())
			if !ok {
				h.error(c, errx.ErrReqParam.WithData("value", p.value()))
				return
			}
			o.Value = v
		}
		cmd, err := build(c, o, req)
		if err != nil {
			h.error(c, err)
			return
		}
		h.exec(c, cmd)
	}
}

func (h *HttpHandler) exec(c *gin.Context, cmd messages.Command) {
	reply, err := h.kingdom.Exec(c.Request.Context(), cmd)
	if err != nil {
		h.error(c, err)
		return
	}
	data := gin.H{"events": []domain.Event{}}
	if reply != nil {
		if reply.Events != nil {
			data["events"] = reply.Events
		}
		if reply.Result != nil {
			data["result"] = reply.Result
		}
	}
	h.ok(c, data)
}

func (h *HttpHandler) query(c *gin.Context, q any, view func(any) any) {
	res, err := h.kingdom.Query(c.Request.Context(), q)
	if err != nil {
		h.error(c, err)
		return
	}
	if view != nil {
		res = view(res)
	}
	h.ok(c, res)
}

func (h *HttpHandler) GetKingdom(c *gin.Context) {
	h.query(c, &messages.GetKingdom{}, func(v any) any {
		if kv, ok := v.(kapp.KingdomView); ok {
			return toKingdomResp(kv)
		}
		return v
	})
}

func (h *HttpHandler) Owner(c *gin.Context) {
	h.query(c, &messages.Owner{}, hexView)
}

func (h *HttpHandler) GetLand(c *gin.Context) {
	id, err := pathLand(c)
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.GetLand{LandID: id}, func(v any) any {
		if lv, ok := v.(kapp.LandView); ok {
			return toLandResp(lv)
		}
		return v
	})
}

func (h *HttpHandler) OwnerOf(c *gin.Context) {
	id, err := pathLand(c)
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.OwnerOf{LandID: id}, hexView)
}

func (h *HttpHandler) GetApproved(c *gin.Context) {
	id, err := pathLand(c)
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.GetApproved{LandID: id}, hexView)
}

func (h *HttpHandler) TokenURI(c *gin.Context) {
	id, err := pathLand(c)
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.TokenURI{LandID: id}, nil)
}

func (h *HttpHandler) RoyaltyInfo(c *gin.Context) {
	id, err := pathLand(c)
	if err != nil {
		h.error(c, err)
		return
	}
	price, ok := parseWei(c.Query("salePrice"))
	if !ok {
		h.error(c, errx.ErrReqParam.WithData("salePrice", c.Query("salePrice")))
		return
	}
	h.query(c, &messages.RoyaltyInfo{LandID: id, SalePrice: price}, func(v any) any {
		if rv, ok := v.(messages.RoyaltyInfoResult); ok {
			return toRoyaltyResp(rv)
		}
		return v
	})
}

func (h *HttpHandler) BalanceOf(c *gin.Context) {
	addr, err := pathAddr(c, "addr")
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.BalanceOf{Owner: addr}, nil)
}

func (h *HttpHandler) WalletBalance(c *gin.Context) {
	addr, err := pathAddr(c, "addr")
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.WalletBalance{Address: addr}, func(v any) any {
		if b, ok := v.(*big.Int); ok {
			return domain.Wei(b).String()
		}
		return v
	})
}

func (h *HttpHandler) IsApprovedForAll(c *gin.Context) {
	owner, err := pathAddr(c, "addr")
	if err != nil {
		h.error(c, err)
		return
	}
	operator, err := pathAddr(c, "operator")
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.IsApprovedForAll{Owner: owner, Operator: operator}, nil)
}

func (h *HttpHandler) HasRole(c *gin.Context) {
	role, err := parseRole(c.Param("role"))
	if err != nil {
		h.error(c, err)
		return
	}
	addr, err := pathAddr(c, "addr")
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.HasRole{Role: role, Account: addr}, nil)
}

func (h *HttpHandler) ExtraMintConfig(c *gin.Context) {
	h.query(c, &messages.ExtraMintConfig{}, nil)
}

func (h *HttpHandler) ExtraMintUser(c *gin.Context) {
	addr, err := pathAddr(c, "addr")
	if err != nil {
		h.error(c, err)
		return
	}
	h.query(c, &messages.ExtraMintUser{User: addr}, nil)
}

// DevToken 为任意地址签发令牌，只在 dev 模式注册。
func (h *HttpHandler) DevToken(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == domain.ZeroAddress {
		h.error(c, errx.ErrReqParam)
		return
	}
	token, err := security.Award(req.Address)
	if err != nil {
		h.error(c, errx.ErrInternal.WithCause(err))
		return
	}
	h.ok(c, gin.H{"token": token, "address": req.Address.Hex()})
}

// DevFaucet 给地址的钱包入账，单次不超过 faucet_max。
func (h *HttpHandler) DevFaucet(c *gin.Context) {
	var req faucetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, errx.ErrReqParam.WithCause(err))
		return
	}
	amount, ok := parseWei(req.Amount)
	if !ok || amount.Sign() == 0 {
		h.error(c, errx.ErrReqParam.WithData("amount", req.Amount))
		return
	}
	if limit := h.dev.FaucetMax.Wei(); limit.Sign() > 0 && amount.Cmp(limit) > 0 {
		h.error(c, errx.ErrReqParam.WithData("max", limit.String()))
		return
	}
	h.exec(c, &messages.Fund{To: req.To, Amount: amount})
}

func pathLand(c *gin.Context) (domain.LandID, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errx.ErrReqParam.WithData("id", raw)
	}
	return domain.LandID(id), nil
}

func pathAddr(c *gin.Context, name string) (domain.Address, error) {
	raw := c.Param(name)
	if !common.IsHexAddress(raw) {
		return domain.Address{}, errx.ErrReqParam.WithData(name, raw)
	}
	return common.HexToAddress(raw), nil
}

func parseRole(name string) (access.Role, error) {
	role, ok := access.ParseRole(name)
	if !ok {
		return access.Role{}, errx.ErrReqParam.WithData("role", name)
	}
	return role, nil
}

func hexView(v any) any {
	if a, ok := v.(domain.Address); ok {
		return a.Hex()
	}
	return v
}
