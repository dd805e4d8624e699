package actors

import (
	"context"
	"reflect"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	op      string
	reqType reflect.Type
	fn      func(ctx context.Context, p *KingdomActor, req any) any
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	registerCommand(d, KH.HandleMint)
	registerCommand(d, KH.HandleMintBatch)
	registerCommand(d, KH.HandlePurchase)
	registerCommand(d, KH.HandleUpgrade)
	registerCommand(d, KH.HandleListForSale)
	registerCommand(d, KH.HandleSetName)
	registerCommand(d, KH.HandleSetLandStats)
	registerCommand(d, KH.HandleSetLandAppearance)
	registerCommand(d, KH.HandleTransferFrom)
	registerCommand(d, KH.HandleApprove)
	registerCommand(d, KH.HandleSetApprovalForAll)
	registerCommand(d, KH.HandleReceive)

	registerCommand(d, KH.HandleSetLandBasePrice)
	registerCommand(d, KH.HandleSetURI)
	registerCommand(d, KH.HandleSetVerifier)
	registerCommand(d, KH.HandleSetDefaultRoyalty)
	registerCommand(d, KH.HandleSetTierRoyaltyBps)
	registerCommand(d, KH.HandleSetTransferEnabled)
	registerCommand(d, KH.HandleSetWhitelistedApprover)
	registerCommand(d, KH.HandleSetStartTime)
	registerCommand(d, KH.HandleGrantRole)
	registerCommand(d, KH.HandleRevokeRole)
	registerCommand(d, KH.HandleFund)

	registerCommand(d, KH.HandleAssignSlots)
	registerCommand(d, KH.HandleRemoveSlots)
	registerCommand(d, KH.HandleSetExtraTotalSupply)
	registerCommand(d, KH.HandleSetExtraMintEnabled)
	registerCommand(d, KH.HandleSetExtraMintEndTime)
	registerCommand(d, KH.HandleSetExtraMintMinter)
	registerCommand(d, KH.HandleExtraMint)

	registerQuery(d, KH.HandleGetLand)
	registerQuery(d, KH.HandleGetKingdom)
	registerQuery(d, KH.HandleRoyaltyInfo)
	registerQuery(d, KH.HandleOwnerOf)
	registerQuery(d, KH.HandleBalanceOf)
	registerQuery(d, KH.HandleGetApproved)
	registerQuery(d, KH.HandleIsApprovedForAll)
	registerQuery(d, KH.HandleTokenURI)
	registerQuery(d, KH.HandleOwner)
	registerQuery(d, KH.HandleHasRole)
	registerQuery(d, KH.HandleWalletBalance)
	registerQuery(d, KH.HandleExtraMintUser)
	registerQuery(d, KH.HandleExtraMintConfig)
}

func reqTypeOf[Req any]() reflect.Type {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}
	return reqType
}

func opName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}

// registerCommand 注册写命令：handler 在 exec 内以整次调用为单位执行。
func registerCommand[Req messages.Command](
	d *Dispatcher,
	fn func(p *KingdomActor, call *domain.Call, req Req) (any, error),
) {
	reqType := reqTypeOf[Req]()
	op := opName(reqType)
	d.handlers[reqType] = Handler{
		op:      op,
		reqType: reqType,
		fn: func(ctx context.Context, p *KingdomActor, req any) any {
			r := req.(Req)
			return p.exec(ctx, op, r.Sender(), func(call *domain.Call) (any, error) {
				return fn(p, call, r)
			})
		},
	}
}

// registerQuery 注册只读查询：直接读取当前状态。
func registerQuery[Req any](
	d *Dispatcher,
	fn func(p *KingdomActor, req Req) (any, error),
) {
	reqType := reqTypeOf[Req]()
	d.handlers[reqType] = Handler{
		op:      opName(reqType),
		reqType: reqType,
		fn: func(_ context.Context, p *KingdomActor, req any) any {
			res, err := fn(p, req.(Req))
			return &messages.QueryReply{Result: res, Err: err}
		},
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *KingdomActor, reqCtx context.Context, req any) {
	if req == nil {
		ctx.Respond(&messages.QueryReply{Err: errx.ErrReqParam.WithData("body", "nil")})
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(&messages.QueryReply{Err: errx.ErrReqParam.WithData("body", bodyType.String())})
		return
	}

	ctx.Respond(handler.fn(reqCtx, p, req))
}
