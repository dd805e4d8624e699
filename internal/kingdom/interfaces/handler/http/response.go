package http

import (
	nethttp "net/http"

	"LandKingdom/internal/kingdom/actor"
	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// Resp 是统一响应体；code 与 HTTP 状态同值，reason 为稳定错误码。
type Resp struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, Resp{Code: transport.OK, Msg: "ok", Data: data})
}

func (h *HttpHandler) error(c *gin.Context, err error) {
	code := actor.CodeFromError(err)
	if code == transport.SystemError {
		logx.ReportError(c.Request.Context(), h.log, "kingdom http", err)
	}
	transport.SetError(c.Request.Context(), err)
	abortWith(c, code, err)
}

func abortWith(c *gin.Context, code int, err error) {
	resp := Resp{Code: code, Msg: err.Error(), Reason: string(errx.CodeOf(err))}
	if e, ok := err.(*errx.Error); ok {
		resp.Msg = e.Msg()
		resp.Data = e.Data()
	}
	c.AbortWithStatusJSON(code, resp)
}
