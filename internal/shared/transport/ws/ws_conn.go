package ws

// ReqBody 是客户端上行帧：name 形如 group.handler，seq 原样回带。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// RespBody 是下行帧；服务端主动推送时 seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// replyTo 生成与请求同 seq、同 name 的应答帧。
func replyTo(req *ReqBody) *WsMsgResp {
	return &WsMsgResp{Body: &RespBody{Seq: req.Seq, Name: req.Name, Msg: req.Msg}}
}

func pushFrame(name string, data any) *WsMsgResp {
	return &WsMsgResp{Body: &RespBody{Name: name, Msg: data}}
}

// WSConn 是一条推送连接：请求处理器通过属性记录订阅条件。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	Push(name string, data any) bool
	Close()
	// Done 在连接关闭时被关闭
	Done() <-chan struct{}
}

// Heartbeat 原样回带客户端时间，并附上服务端毫秒时间。
type Heartbeat struct {
	CTime int64 `json:"ctime"`
	STime int64 `json:"stime"`
}

const HeartbeatMsg = "heartbeat"
