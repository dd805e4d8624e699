package http

import (
	"context"
	nethttp "net/http"
	"sync/atomic"
	"time"

	"LandKingdom/internal/shared/transport/http/middleware"
	"LandKingdom/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar 由各模块实现，把自己的路由挂到分组上。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}

// Server 包装 gin 引擎与 net/http 服务；/healthz 是存活探针，/readyz 在 SetReady(true) 后才返回 200。
type Server struct {
	engine *gin.Engine
	srv    *nethttp.Server
	ready  atomic.Bool
}

func NewHttpServer(addr string, engine *gin.Engine, log logx.Logger) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Cors(), middleware.Metrics(), middleware.AccessLog(log))

	s := &Server{
		engine: engine,
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/readyz", s.readyz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return s
}

func (s *Server) readyz(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(nethttp.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"status": "ready"})
}

// Register 把各模块路由挂到根分组。
func (s *Server) Register(rs ...Registrar) {
	g := s.engine.Group("")
	for _, r := range rs {
		r.HttpRegister(g)
	}
}

func (s *Server) SetReady(ready bool) { s.ready.Store(ready) }

// Start 阻塞监听；Shutdown 后返回 http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown 先摘除就绪状态再等待在途请求结束。
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)
	return s.srv.Shutdown(ctx)
}

func (s *Server) Handler() nethttp.Handler { return s.engine }
func (s *Server) Engine() *gin.Engine      { return s.engine }
