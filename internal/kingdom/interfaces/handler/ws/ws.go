package ws

import (
	"context"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/internal/shared/transport/ws"
	"LandKingdom/modules/kit/errx"
)

// Querier 是推送通道上只读查询的依赖。
type Querier interface {
	Query(ctx context.Context, q any) (any, error)
}

type WsHandler struct {
	kingdom Querier
}

func NewWsHandler(k Querier) *WsHandler {
	return &WsHandler{kingdom: k}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	events := r.Group("events")
	events.Handle("subscribe", ws.Bind(h.Subscribe))
	events.Handle("unsubscribe", ws.Bind(h.Unsubscribe))

	land := r.Group("land")
	land.Handle("get", ws.Bind(h.GetLand))

	kingdom := r.Group("kingdom")
	kingdom.Handle("get", ws.Bind(h.GetKingdom))
}

// Subscribe 用新的过滤条件替换连接上的订阅。
func (h *WsHandler) Subscribe(_ context.Context, req *ws.WsMsgReq) (any, error) {
	var body subscribeReq
	if err := ws.BindJSON(req, &body); err != nil {
		return nil, err
	}
	sub, err := newSubscription(body)
	if err != nil {
		return nil, err
	}
	if req.Conn == nil {
		return nil, errx.ErrReqParam
	}
	req.Conn.SetProperty(subscriptionKey, sub)
	return map[string]any{"subscribed": true}, nil
}

func (h *WsHandler) Unsubscribe(_ context.Context, req *ws.WsMsgReq) (any, error) {
	if req.Conn != nil {
		req.Conn.RemoveProperty(subscriptionKey)
	}
	return map[string]any{"subscribed": false}, nil
}

func (h *WsHandler) GetLand(ctx context.Context, req *ws.WsMsgReq) (any, error) {
	var body struct {
		ID uint64 `json:"id"`
	}
	if err := ws.BindJSON(req, &body); err != nil {
		return nil, err
	}
	return h.kingdom.Query(ctx, &messages.GetLand{LandID: domain.LandID(body.ID)})
}

func (h *WsHandler) GetKingdom(ctx context.Context, _ *ws.WsMsgReq) (any, error) {
	return h.kingdom.Query(ctx, &messages.GetKingdom{})
}
