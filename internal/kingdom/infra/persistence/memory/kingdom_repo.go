package memory

import (
	"context"
	"sort"
	"sync"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/state"
)

// KingdomRepository 把快照保存在进程内，供开发与测试使用。
type KingdomRepository struct {
	mu     sync.Mutex
	ledger *state.PersistSnapshot
	lands  map[domain.LandID]domain.Land
	saves  int
}

func NewKingdomRepository() *KingdomRepository {
	return &KingdomRepository{lands: make(map[domain.LandID]domain.Land)}
}

func (r *KingdomRepository) Load(ctx context.Context) (*state.PersistSnapshot, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ledger == nil {
		return nil, nil
	}
	cp := *r.ledger
	cp.Lands = make([]domain.Land, 0, len(r.lands))
	for _, l := range r.lands {
		cp.Lands = append(cp.Lands, l)
	}
	sort.Slice(cp.Lands, func(i, j int) bool { return cp.Lands[i].ID < cp.Lands[j].ID })
	return &cp, nil
}

// Save 覆盖账本、合并地块；旧版本快照直接忽略。
func (r *KingdomRepository) Save(ctx context.Context, s *state.PersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ledger != nil && s.Version <= r.ledger.Version {
		return nil
	}
	for _, l := range s.Lands {
		r.lands[l.ID] = l
	}
	cp := *s
	cp.Lands = nil
	r.ledger = &cp
	r.saves++
	return nil
}

// Saves 返回成功写入的次数。
func (r *KingdomRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
