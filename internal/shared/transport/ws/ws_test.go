package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/errx"

	"github.com/gorilla/websocket"
)

type fakeConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []string
	done   chan struct{}
	full   bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{props: make(map[string]any), done: make(chan struct{})}
}

func (c *fakeConn) SetProperty(k string, v any) { c.mu.Lock(); c.props[k] = v; c.mu.Unlock() }
func (c *fakeConn) GetProperty(k string) any    { c.mu.Lock(); defer c.mu.Unlock(); return c.props[k] }
func (c *fakeConn) RemoveProperty(k string)     { c.mu.Lock(); delete(c.props, k); c.mu.Unlock() }
func (c *fakeConn) Addr() string                { return "fake" }
func (c *fakeConn) Close()                      { close(c.done) }
func (c *fakeConn) Done() <-chan struct{}       { return c.done }
func (c *fakeConn) Push(name string, _ any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return false
	}
	c.pushed = append(c.pushed, name)
	return true
}

func TestHub_按条件广播(t *testing.T) {
	h := NewHub()
	a, b := newFakeConn(), newFakeConn()
	b.SetProperty("topic", "land")
	h.Join(a)
	h.Join(b)

	sent := h.Broadcast("event", 1, func(c WSConn) bool { return c.GetProperty("topic") == "land" })
	if sent != 1 || len(b.pushed) != 1 || len(a.pushed) != 0 {
		t.Fatalf("期望只推送给订阅者: sent=%d", sent)
	}
	if h.Broadcast("event", 1, nil) != 2 {
		t.Fatalf("无条件广播应覆盖所有连接")
	}
}

func TestHub_连接关闭后移除(t *testing.T) {
	h := NewHub()
	c := newFakeConn()
	h.Join(c)
	c.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && h.Len() != 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if h.Len() != 0 {
		t.Fatalf("连接关闭后应移除")
	}
}

func TestRouter_Bind映射错误分类(t *testing.T) {
	r := NewRouter(nil)
	r.Group("land").Handle("get", Bind(func(ctx context.Context, req *WsMsgReq) (any, error) {
		return nil, errx.ErrReqParam
	}))
	r.Group("land").Handle("ok", Bind(func(ctx context.Context, req *WsMsgReq) (any, error) {
		return "done", nil
	}))

	resp := &WsMsgResp{Body: &RespBody{}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "land.get"}}, resp)
	if resp.Body.Code != transport.ValidationError {
		t.Fatalf("期望 400，得到 %d", resp.Body.Code)
	}

	resp = &WsMsgResp{Body: &RespBody{}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "land.ok"}}, resp)
	if resp.Body.Code != transport.OK || resp.Body.Msg != "done" {
		t.Fatalf("期望成功，得到 %+v", resp.Body)
	}

	resp = &WsMsgResp{Body: &RespBody{}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "nope"}}, resp)
	if resp.Body.Code != transport.ValidationError {
		t.Fatalf("非法路由应为 400，得到 %d", resp.Body.Code)
	}
}

func TestServer_心跳回显(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(NewServer(NewRouter(nil), hub, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ReqBody{Seq: 7, Name: HeartbeatMsg, Msg: map[string]any{"ctime": 1}}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var body RespBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if body.Seq != 7 || body.Name != HeartbeatMsg {
		t.Fatalf("心跳回包不一致: %+v", body)
	}
	if hub.Len() != 1 {
		t.Fatalf("期望 hub 登记 1 条连接，得到 %d", hub.Len())
	}
}

func TestBindJSON_各种消息形态(t *testing.T) {
	type body struct {
		ID uint64 `json:"id"`
	}
	cases := []struct {
		name string
		msg  any
		want uint64
	}{
		{"map", map[string]any{"id": 3}, 3},
		{"raw", json.RawMessage(`{"id":4}`), 4},
		{"nil", nil, 0},
	}
	for _, tc := range cases {
		var b body
		if err := BindJSON(&WsMsgReq{Body: &ReqBody{Msg: tc.msg}}, &b); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if b.ID != tc.want {
			t.Fatalf("%s: 期望 %d，得到 %d", tc.name, tc.want, b.ID)
		}
	}

	var b body
	err := BindJSON(&WsMsgReq{Body: &ReqBody{Msg: map[string]any{"id": "x"}}}, &b)
	if errx.CodeOf(err) != errx.CodeOf(errx.ErrReqParam) {
		t.Fatalf("类型不符应返回参数错误，得到 %v", err)
	}
}

func TestRouter_处理器panic记为系统错误(t *testing.T) {
	r := NewRouter(nil)
	r.Group("land").Handle("boom", Bind(func(context.Context, *WsMsgReq) (any, error) {
		panic("bad")
	}))
	resp := &WsMsgResp{Body: &RespBody{}}
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "land.boom"}}, resp)
	if resp.Body.Code != transport.SystemError {
		t.Fatalf("期望 500，得到 %d", resp.Body.Code)
	}
}

func TestRouter_重复注册panic(t *testing.T) {
	r := NewRouter(nil)
	h := Bind(func(context.Context, *WsMsgReq) (any, error) { return nil, nil })
	r.Group("land").Handle("get", h)
	defer func() {
		if recover() == nil {
			t.Fatalf("重复注册应 panic")
		}
	}()
	r.Group("land").Handle("get", h)
}
