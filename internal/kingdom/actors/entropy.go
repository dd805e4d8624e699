package actors

import (
	"crypto/rand"
	"encoding/binary"

	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/state"

	"github.com/ethereum/go-ethereum/crypto"
)

// EntropyChain 为每次调用派生熵：keccak(上一次熵, 序号, 时间, 调用方)。
// 可预测，只用于属性与外观的随机性。进度写在 state.Entropy 里，随快照落库。
type EntropyChain struct {
	cur *state.Entropy
}

// NewEntropyChain 以 seed 起一条独立的链；seed 为全零时取随机种子。
func NewEntropyChain(seed [32]byte) *EntropyChain {
	return ResumeEntropyChain(seed, &state.Entropy{})
}

// ResumeEntropyChain 在 cur 上续链；cur 尚未起链时用 seed（全零取随机）起链。
func ResumeEntropyChain(seed [32]byte, cur *state.Entropy) *EntropyChain {
	if !cur.Started() {
		if seed == ([32]byte{}) {
			_, _ = rand.Read(seed[:])
		}
		cur.Prev = seed
	}
	return &EntropyChain{cur: cur}
}

func (c *EntropyChain) Next(from domain.Address, now int64) [32]byte {
	c.cur.Seq++
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], c.cur.Seq)
	binary.BigEndian.PutUint64(buf[8:], uint64(now))
	c.cur.Prev = crypto.Keccak256Hash(c.cur.Prev[:], buf[:], from.Bytes())
	return c.cur.Prev
}
