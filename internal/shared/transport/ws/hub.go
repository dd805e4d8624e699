package ws

import (
	"sync"

	"LandKingdom/internal/shared/metrics"
)

// Hub 记录在线连接，用于广播推送。
type Hub struct {
	mu    sync.RWMutex
	conns map[WSConn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[WSConn]struct{})}
}

// Join 登记连接，连接关闭后自动移除。
func (h *Hub) Join(c WSConn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	metrics.SetWSClients(n)

	go func() {
		<-c.Done()
		h.Leave(c)
	}()
}

func (h *Hub) Leave(c WSConn) {
	h.mu.Lock()
	delete(h.conns, c)
	n := len(h.conns)
	h.mu.Unlock()
	metrics.SetWSClients(n)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast 向 match 返回 true 的连接推送；返回成功投递的连接数。
func (h *Hub) Broadcast(name string, data any, match func(c WSConn) bool) int {
	h.mu.RLock()
	targets := make([]WSConn, 0, len(h.conns))
	for c := range h.conns {
		if match == nil || match(c) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if c.Push(name, data) {
			sent++
		}
	}
	return sent
}
