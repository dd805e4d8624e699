package ws

import (
	"context"
	"fmt"
	"strings"

	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/logx"
)

var (
	errBadFrame      = errx.NewBiz("BadFrame", "消息格式错误").In(errx.CategoryValidation)
	errRouteNotFound = errx.NewBiz("RouteNotFound", "路由不存在").In(errx.CategoryValidation)
)

// Handler 返回写入 resp.Body.Msg 的结果；err 按分类映射为业务码。
type Handler func(ctx context.Context, req *WsMsgReq) (any, error)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Registrar 由各模块实现，把自己的路由挂到 Router 上。
type Registrar interface {
	WsRegister(r *Router)
}

// Router 按 "group.handler" 全名分发上行消息。
type Router struct {
	routes map[string]HandlerFunc
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.Nop()
	}
	return &Router{routes: make(map[string]HandlerFunc), log: l}
}

// Group 是同一前缀下的路由集合。
type Group struct {
	prefix string
	r      *Router
}

func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, r: r}
}

// Handle 注册 prefix.name；重复注册视为编程错误。
func (g *Group) Handle(name string, h HandlerFunc) {
	full := g.prefix + "." + name
	if _, ok := g.r.routes[full]; ok {
		panic(fmt.Sprintf("ws route %q registered twice", full))
	}
	g.r.routes[full] = h
}

func (r *Router) Register(rs ...Registrar) {
	for _, m := range rs {
		m.WsRegister(r)
	}
}

// Bind 把返回值形式的 Handler 适配为 HandlerFunc。
func Bind(h Handler) HandlerFunc {
	return func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		res, err := h(ctx, req)
		if err != nil {
			fail(ctx, resp, err)
			return
		}
		resp.Body.Code = transport.OK
		resp.Body.Msg = res
	}
}

func fail(ctx context.Context, resp *WsMsgResp, err error) {
	transport.SetError(ctx, err)
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = int(transport.BizCodeOf(err))
	resp.Body.Msg = err.Error()
	if e, ok := err.(*errx.Error); ok && e.Msg() != "" {
		resp.Body.Msg = e.Msg()
	}
}

// Dispatch 查找路由并执行；handler panic 记为系统错误，不影响连接。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)
	if resp != nil && resp.Body != nil {
		// 先置系统错误，handler 漏设时不会被当成成功。
		resp.Body.Code = transport.SystemError
		resp.Body.Msg = nil
	}
	defer r.finish(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		fail(ctx, resp, errBadFrame)
		return
	}
	h, ok := r.lookup(req.Body.Name)
	if !ok {
		fail(ctx, resp, errRouteNotFound.WithData("route", req.Body.Name))
		return
	}
	defer func() {
		if p := recover(); p != nil {
			err := errx.ErrInternal.WithCause(fmt.Errorf("ws handler panic: %v", p))
			logx.ReportError(ctx, r.log, action, err)
			fail(ctx, resp, err)
		}
	}()
	h(ctx, req, resp)
}

func (r *Router) lookup(name string) (HandlerFunc, bool) {
	prefix, handler, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return nil, false
	}
	h, ok := r.routes[name]
	return h, ok
}

func (r *Router) finish(ctx context.Context, resp *WsMsgResp) {
	code := transport.SystemError
	if resp != nil && resp.Body != nil {
		code = resp.Body.Code
	}
	transport.SetBizCode(ctx, transport.BizCode(code))
	transport.WriteAccessLog(ctx, r.log)
}
