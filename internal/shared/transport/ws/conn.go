package ws

import (
	"encoding/json"
	"sync"
	"time"

	"LandKingdom/modules/kit/logx"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	outQueueSize = 256
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	maxFrameSize = 64 * 1024
)

// Conn 是一条已升级的连接：读循环分发请求，写循环串行下发应答与推送。
type Conn struct {
	ws     *websocket.Conn
	router *Router
	log    logx.Logger
	out    chan *WsMsgResp

	mu    sync.RWMutex
	props map[string]any

	done      chan struct{}
	closeOnce sync.Once
}

var _ WSConn = (*Conn)(nil)

func newConn(ws *websocket.Conn, router *Router, l logx.Logger) *Conn {
	return &Conn{
		ws:     ws,
		router: router,
		log:    l,
		out:    make(chan *WsMsgResp, outQueueSize),
		props:  make(map[string]any),
		done:   make(chan struct{}),
	}
}

func (c *Conn) SetProperty(key string, value any) {
	c.mu.Lock()
	c.props[key] = value
	c.mu.Unlock()
}

func (c *Conn) GetProperty(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.props[key]
}

func (c *Conn) RemoveProperty(key string) {
	c.mu.Lock()
	delete(c.props, key)
	c.mu.Unlock()
}

func (c *Conn) Addr() string { return c.ws.RemoteAddr().String() }

func (c *Conn) Done() <-chan struct{} { return c.done }

// Push 非阻塞投递；队列满或连接已关闭时丢弃并返回 false。
func (c *Conn) Push(name string, data any) bool {
	return c.enqueue(pushFrame(name, data))
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		_ = c.ws.Close()
		close(c.done)
	})
}

func (c *Conn) enqueue(frame *WsMsgResp) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- frame:
		return true
	default:
		c.log.Warn("ws out queue full, drop frame", zap.String("name", frame.Body.Name), zap.String("addr", c.Addr()))
		return false
	}
}

func (c *Conn) run() {
	go c.readLoop()
	go c.writeLoop()
}

func (c *Conn) readLoop() {
	defer func() {
		if p := recover(); p != nil {
			c.log.Error("ws read loop panic", zap.Any("panic", p))
		}
		c.Close()
	}()
	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read failed", zap.Error(err), zap.String("addr", c.Addr()))
			}
			return
		}
		if frame := c.handle(data); frame != nil {
			c.enqueue(frame)
		}
	}
}

// handle 解析一帧并生成应答；无法解析的帧直接丢弃。
func (c *Conn) handle(data []byte) *WsMsgResp {
	var body ReqBody
	if err := json.Unmarshal(data, &body); err != nil {
		c.log.Debug("ws drop malformed frame", zap.Error(err), zap.String("addr", c.Addr()))
		return nil
	}
	resp := replyTo(&body)
	switch {
	case body.Name == HeartbeatMsg:
		hb := &Heartbeat{}
		_ = mapstructure.Decode(body.Msg, hb)
		hb.STime = time.Now().UnixMilli()
		resp.Body.Msg = hb
	case c.router != nil:
		c.router.Dispatch(&WsMsgReq{Body: &body, Conn: c}, resp)
	}
	return resp
}

func (c *Conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case frame := <-c.out:
			if err := c.write(frame); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// write 序列化失败只丢这一帧，写失败才断开。
func (c *Conn) write(frame *WsMsgResp) error {
	data, err := json.Marshal(frame.Body)
	if err != nil {
		c.log.Error("ws marshal frame failed", zap.Error(err), zap.String("name", frame.Body.Name))
		return nil
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}
