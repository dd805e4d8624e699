package ws

import (
	"net/http"

	"LandKingdom/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server 把 HTTP 升级为 websocket，并把连接登记到 hub 以接收推送。
type Server struct {
	router   *Router
	hub      *Hub
	log      logx.Logger
	upgrader websocket.Upgrader
}

func NewServer(r *Router, hub *Hub, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		hub:    hub,
		log:    l,
		upgrader: websocket.Upgrader{
			// 推送是公开数据，允许任意来源
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}
	c := newConn(ws, s.router, s.log)
	if s.hub != nil {
		s.hub.Join(c)
	}
	c.run()
	s.log.Debug("ws connected", zap.String("addr", c.Addr()))
}
