package stats

import (
	"encoding/binary"
	"math/rand/v2"
	"slices"

	"LandKingdom/internal/kingdom/domain"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// 第 k 次升阶后的属性总和区间为 [BaseLow+Step*k, BaseHigh+Step*k]。
	BaseLow  = 40
	BaseHigh = 50
	Step     = 5
)

// Bounds 返回目标等级的属性总和区间。
func Bounds(tier domain.Tier) (lo, hi uint32) {
	return BaseLow + Step*uint32(tier), BaseHigh + Step*uint32(tier)
}

// Seed 由调用熵、地块编号与目标等级派生确定性种子。
func Seed(entropy [32]byte, id domain.LandID, tier domain.Tier) [32]byte {
	var buf [9]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(id))
	buf[8] = byte(tier)
	return crypto.Keccak256Hash(entropy[:], buf[:])
}

// Engine 产出有界的属性增量；同一种子结果可复现。
type Engine struct {
	appearanceVariants uint32
}

func NewEngine(appearanceVariants uint32) *Engine {
	if appearanceVariants == 0 {
		appearanceVariants = 1
	}
	return &Engine{appearanceVariants: appearanceVariants}
}

// Roll 为升到 tier 的地块生成四项增量，使 prev+delta 的总和落在 Bounds(tier)。
// prev 已超过上界时（管理员直接改过属性）增量为 0。
func (e *Engine) Roll(seed [32]byte, prev domain.Stats, tier domain.Tier) domain.Stats {
	rng := rand.New(rand.NewChaCha8(seed))
	return roll(rng, prev, tier)
}

// RollAppearance 为新铸造的地块抽取外观编号。
func (e *Engine) RollAppearance(seed [32]byte) uint32 {
	rng := rand.New(rand.NewChaCha8(crypto.Keccak256Hash(seed[:], []byte("appearance"))))
	return rng.Uint32N(e.appearanceVariants)
}

func roll(rng *rand.Rand, prev domain.Stats, tier domain.Tier) domain.Stats {
	lo, hi := Bounds(tier)
	cur := prev.Total()
	if cur > hi {
		return domain.Stats{}
	}
	if cur > lo {
		lo = cur
	}
	target := lo + rng.Uint32N(hi-lo+1)
	return split(rng, target-cur)
}

// split 用三个切点把 total 随机分成四个非负整数。
func split(rng *rand.Rand, total uint32) domain.Stats {
	cuts := []uint32{rng.Uint32N(total + 1), rng.Uint32N(total + 1), rng.Uint32N(total + 1)}
	slices.Sort(cuts)
	return domain.Stats{
		Fertility: cuts[0],
		Wealth:    cuts[1] - cuts[0],
		Defense:   cuts[2] - cuts[1],
		Prestige:  total - cuts[2],
	}
}
