package domain

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Wei256 是值语义的金额（wei），便于记录按值拷贝；零值即 0。
type Wei256 struct {
	v uint256.Int
}

func NewWei256(b *big.Int) Wei256 {
	var w Wei256
	if b != nil && b.Sign() > 0 {
		w.v.SetFromBig(b)
	}
	return w
}

func (w Wei256) Big() *big.Int {
	return w.v.ToBig()
}

func (w Wei256) IsZero() bool {
	return w.v.IsZero()
}

func (w Wei256) String() string {
	return w.v.Dec()
}
