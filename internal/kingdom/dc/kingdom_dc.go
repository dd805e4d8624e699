package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"LandKingdom/internal/kingdom/app/port"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/internal/shared/metrics"
	"LandKingdom/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	retryBackoff      = 200 * time.Millisecond
)

// KingdomDC 负责王国状态的加载与异步落库：actor 线程生成快照，写库协程只写最新快照。
type KingdomDC struct {
	repo       port.KingdomRepository
	flushEvery time.Duration
	logger     logx.Logger

	mu      sync.Mutex
	pending *state.PersistSnapshot
	version uint64
	saved   uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewKingdomDC(repo port.KingdomRepository, flushEvery time.Duration, logger logx.Logger) *KingdomDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if logger == nil {
		logger = logx.Nop()
	}
	d := &KingdomDC{
		repo:       repo,
		flushEvery: flushEvery,
		logger:     logger,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Load 读取持久化状态；库为空时返回创世状态（整体标脏，首轮 flush 会写入）。
func (d *KingdomDC) Load(ctx context.Context, opts state.Options) (*state.State, error) {
	if d.repo == nil {
		return nil, errors.New("kingdom repository is nil")
	}
	snap, err := d.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return state.New(opts), nil
	}
	d.mu.Lock()
	d.version = snap.Version
	d.saved = snap.Version
	d.mu.Unlock()
	return state.Restore(opts, snap), nil
}

// Flush 在 actor 线程调用：生成快照并交给写库协程。
func (d *KingdomDC) Flush(st *state.State) {
	if st == nil || !st.Dirty() {
		return
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := st.BuildPersistSnapshot(version)
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

func (d *KingdomDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// SavedVersion 返回最近一次成功写库的快照版本。
func (d *KingdomDC) SavedVersion() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// Close 写出最后的快照并停止写库协程。
func (d *KingdomDC) Close(ctx context.Context, st *state.State) error {
	d.Flush(st)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *KingdomDC) enqueueLatest(s *state.PersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.mergeLocked(s)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// mergeLocked 让 pending 始终是最高版本，同时保留被覆盖快照中的地块。
func (d *KingdomDC) mergeLocked(s *state.PersistSnapshot) {
	switch {
	case d.pending == nil:
		d.pending = s
	case d.pending.Version < s.Version:
		s.Absorb(d.pending)
		d.pending = s
	default:
		d.pending.Absorb(s)
	}
}

func (d *KingdomDC) popPending() *state.PersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *KingdomDC) requeueOnError(s *state.PersistSnapshot) {
	d.mu.Lock()
	d.mergeLocked(s)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *KingdomDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

// consumePending 写出 pending。失败时重排快照并回到 select，让 stop 信号有机会被处理；
// 关闭阶段只额外重试一次。
func (d *KingdomDC) consumePending(closing bool) {
	retried := false
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		err := d.repo.Save(context.TODO(), s)
		metrics.RecordSnapshotSave(err == nil)
		if err != nil {
			d.logger.Error("kingdom snapshot save failed", zap.Uint64("version", s.Version), zap.Error(err))
			d.requeueOnError(s)
			time.Sleep(retryBackoff)
			if !closing || retried {
				return
			}
			retried = true
			continue
		}
		d.mu.Lock()
		if s.Version > d.saved {
			d.saved = s.Version
		}
		d.mu.Unlock()
	}
}
