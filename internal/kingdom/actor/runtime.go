package actor

import (
	"context"
	"errors"
	"time"

	"LandKingdom/internal/kingdom/actors"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/tracex"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

var errUnexpectedReply = errx.ErrInternal.WithData("reason", "unexpected actor reply")

// Runtime 是王国 actor 的调用入口：接口层只通过 Exec/Query 访问状态。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	kingdom *protoactor.PID
	timeout time.Duration
}

func NewRuntime(cfg actors.Config, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewKingdomActor(cfg)
	})
	kingdom := root.Spawn(props)

	return &Runtime{
		system:  system,
		root:    root,
		kingdom: kingdom,
		timeout: askTimeout,
	}
}

// Shutdown 停止王国 actor（写出最后的快照）后关闭 actor 系统。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.kingdom != nil {
		_ = r.root.StopFuture(r.kingdom).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Exec 执行写命令；返回的 error 是业务错误或运行时错误。
func (r *Runtime) Exec(ctx context.Context, cmd messages.Command) (*messages.Reply, error) {
	res, err := r.request(ctx, cmd)
	if err != nil {
		return nil, err
	}
	switch reply := res.(type) {
	case *messages.Reply:
		return reply, reply.Err
	case *messages.QueryReply:
		return nil, reply.Err
	default:
		return nil, errUnexpectedReply
	}
}

// Query 执行只读查询。
func (r *Runtime) Query(ctx context.Context, q any) (any, error) {
	res, err := r.request(ctx, q)
	if err != nil {
		return nil, err
	}
	switch reply := res.(type) {
	case *messages.QueryReply:
		return reply.Result, reply.Err
	case *messages.Reply:
		return reply.Result, reply.Err
	default:
		return nil, errUnexpectedReply
	}
}

func (r *Runtime) request(ctx context.Context, body any) (any, error) {
	if r == nil || r.root == nil || r.kingdom == nil {
		return nil, errx.ErrUnavailable.WithData("reason", "actor runtime not started")
	}

	env := &messages.Envelope{Body: body}
	if ctx != nil {
		env.TraceID, _ = tracex.TraceIDFrom(ctx)
		env.SpanID, _ = tracex.SpanIDFrom(ctx)
		env.Caller, _ = tracex.CallerFrom(ctx)
	}
	future := r.root.RequestFuture(r.kingdom, env, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

// CodeFromError 把 Exec/Query 的错误映射为业务码；运行时故障均为系统错误。
func CodeFromError(err error) int {
	return int(transport.BizCodeOf(err))
}
