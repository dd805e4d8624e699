package actors

import (
	"context"
	"time"

	emapp "LandKingdom/internal/extramint/app"
	"LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/app/port"
	"LandKingdom/internal/kingdom/dc"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/internal/kingdom/stats"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/internal/shared/metrics"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/logx"
	"LandKingdom/modules/kit/tracex"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// Publisher 接收已提交调用的通知（推送、指标等）；在 actor 线程调用，不得阻塞。
type Publisher interface {
	Publish(events []domain.Event)
}

type PublisherFunc func(events []domain.Event)

func (f PublisherFunc) Publish(events []domain.Event) { f(events) }

// Config 是 KingdomActor 的依赖。
type Config struct {
	Options     state.Options
	Repo        port.KingdomRepository
	FlushEvery  time.Duration
	Logger      logx.Logger
	Clock       func() time.Time
	EntropySeed [32]byte
	Publisher   Publisher
}

// KingdomActor 独占王国状态，串行执行全部命令与查询。
type KingdomActor struct {
	state      State
	cfg        Config
	dc         *dc.KingdomDC
	st         *state.State
	registry   *app.Registry
	allocator  *emapp.Allocator
	entropy    *EntropyChain
	dispatcher *Dispatcher
	logger     logx.Logger
	flushStop  chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewKingdomActor(cfg Config) *KingdomActor {
	if cfg.Logger == nil {
		cfg.Logger = logx.Nop()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &KingdomActor{
		state:      None,
		cfg:        cfg,
		dc:         dc.NewKingdomDC(cfg.Repo, cfg.FlushEvery, cfg.Logger),
		dispatcher: NewDispatcher(),
		logger:     cfg.Logger,
	}
}

func (p *KingdomActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx, p.st); err != nil {
			p.logger.Error("kingdom dc close failed", zap.Error(err))
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopFlushLoop()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		p.dc.Flush(p.st)
		return
	case *messages.Envelope:
		if msg == nil {
			return
		}
		if p.state != Online {
			ctx.Respond(notOnline(msg.Body))
			return
		}
		p.dispatcher.Dispatch(ctx, p, requestContext(msg), msg.Body)
	default:
		return
	}
}

func (p *KingdomActor) init(ctx actor.Context) {
	st, err := p.dc.Load(context.TODO(), p.cfg.Options)
	if err != nil {
		p.logger.Error("kingdom state load failed", zap.Error(err))
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}
	p.st = st
	p.entropy = ResumeEntropyChain(p.cfg.EntropySeed, &st.Entropy)
	p.registry = app.NewRegistry(st, stats.NewEngine(st.Kingdom.AppearanceVariants), p.logger)
	p.allocator = emapp.NewAllocator(st, p.registry)
	p.state = Online
	p.startFlushLoop(ctx)
}

func requestContext(env *messages.Envelope) context.Context {
	ctx := context.Background()
	if env.TraceID != "" {
		ctx = tracex.WithTraceID(ctx, env.TraceID)
	}
	if env.SpanID != "" {
		ctx = tracex.WithSpanID(ctx, env.SpanID)
	}
	if env.Caller != "" {
		ctx = tracex.WithCaller(ctx, env.Caller)
	}
	return ctx
}

// exec 以整次调用为单位执行 fn：失败时状态恢复、通知丢弃；成功后发布通知。
func (p *KingdomActor) exec(ctx context.Context, op string, origin messages.Origin, fn func(call *domain.Call) (any, error)) *messages.Reply {
	start := time.Now()
	now := p.cfg.Clock().Unix()
	call := domain.NewCall(origin.From, origin.Value, now, p.entropy.Next(origin.From, now))

	var result any
	err := p.st.Atomic(func() error {
		var err error
		result, err = fn(call)
		return err
	})
	metrics.RecordCommand(op, resultCode(err), time.Since(start))
	if err != nil {
		logx.ReportError(tracex.WithCaller(ctx, origin.From.Hex()), p.logger, op, err)
		return &messages.Reply{Err: err}
	}

	events := call.Receipt.Events
	for _, ev := range events {
		metrics.RecordEvent(string(ev.Kind))
	}
	if p.cfg.Publisher != nil && len(events) > 0 {
		p.cfg.Publisher.Publish(events)
	}
	return &messages.Reply{Result: result, Events: events}
}

func (p *KingdomActor) Registry() *app.Registry {
	return p.registry
}

func (p *KingdomActor) Allocator() *emapp.Allocator {
	return p.allocator
}

func (p *KingdomActor) DC() *dc.KingdomDC {
	return p.dc
}

func (p *KingdomActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *KingdomActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}

func notOnline(body any) any {
	err := errx.ErrUnavailable.WithData("actor", "kingdom")
	if _, ok := body.(messages.Command); ok {
		return &messages.Reply{Err: err}
	}
	return &messages.QueryReply{Err: err}
}

func resultCode(err error) string {
	if err == nil {
		return ""
	}
	if code := errx.CodeOf(err); code != "" {
		return string(code)
	}
	return string(errx.CodeInternal)
}
