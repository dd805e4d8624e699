package http

import (
	"strings"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/security"
	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/tracex"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// Auth 从 Bearer Token 里取出调用方地址，作为每次写命令的 From。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !found || raw == "" {
			abortWith(c, transport.Unauthenticated, errx.ErrUnauthenticated)
			return
		}
		claims, err := security.ParseToken(raw)
		if err != nil {
			abortWith(c, transport.Unauthenticated, errx.ErrUnauthenticated.WithCause(err))
			return
		}
		addr, err := claims.Caller()
		if err != nil {
			abortWith(c, transport.Unauthenticated, errx.ErrUnauthenticated.WithCause(err))
			return
		}
		c.Set(callerKey, addr)
		c.Request = c.Request.WithContext(tracex.WithCaller(c.Request.Context(), addr.Hex()))
		c.Next()
	}
}

func caller(c *gin.Context) domain.Address {
	v, _ := c.Get(callerKey)
	addr, _ := v.(domain.Address)
	return addr
}
