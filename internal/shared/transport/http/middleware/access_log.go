package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// 探活与指标抓取不记访问日志。
var quietPaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
	"/readyz":  true,
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	_, _ = w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 为每个请求挂上 AccessLog 上下文，结束时从响应体的 code/reason 补齐结果。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		body, ok := parseBody(bw.body.Bytes())
		switch {
		case ok:
			transport.SetBizCode(ctx, transport.BizCode(*body.Code))
			transport.SetReason(ctx, body.Reason)
		case c.Writer.Status() >= http.StatusBadRequest:
			transport.SetBizCode(ctx, transport.BizCode(c.Writer.Status()))
		default:
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
		}
		transport.WriteAccessLog(ctx, log)
	}
}

type respBody struct {
	Code   *int   `json:"code"`
	Reason string `json:"reason"`
}

func parseBody(raw []byte) (respBody, bool) {
	var b respBody
	if len(raw) == 0 || json.Unmarshal(raw, &b) != nil || b.Code == nil {
		return respBody{}, false
	}
	return b, true
}
