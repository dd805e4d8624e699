package port

import (
	"context"

	"LandKingdom/internal/kingdom/state"
)

// KingdomRepository 持久化王国状态：Load 在库为空时返回 (nil, nil)。
// Save 对地块按 id upsert，对王国/账本整体覆盖。
type KingdomRepository interface {
	Load(ctx context.Context) (*state.PersistSnapshot, error)
	Save(ctx context.Context, snap *state.PersistSnapshot) error
}
