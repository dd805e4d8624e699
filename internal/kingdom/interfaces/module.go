package interfaces

import (
	"LandKingdom/internal/kingdom/actor"
	"LandKingdom/internal/kingdom/interfaces/handler/http"
	kws "LandKingdom/internal/kingdom/interfaces/handler/ws"
	"LandKingdom/internal/shared/serverconfig"
	transporthttp "LandKingdom/internal/shared/transport/http"
	"LandKingdom/internal/shared/transport/ws"
	"LandKingdom/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	wsHandler   *kws.WsHandler
	httpHandler *http.HttpHandler
}

func New(rt *actor.Runtime, dev serverconfig.DevConfig, log logx.Logger) *Module {
	return &Module{
		wsHandler:   kws.NewWsHandler(rt),
		httpHandler: http.NewHttpHandler(rt, dev, log),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
