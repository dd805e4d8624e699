package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Address 是钱包/合约地址，直接复用以太坊 20 字节地址。
type Address = common.Address

// ZeroAddress 表示“无主”：铸造的来源、撤销授权的目标。
var ZeroAddress = Address{}

// Ether 把整数个 ether 与 10^decimals 分母转换为 wei，便于常量书写：Ether(25, 3) == 0.025 ETH。
func Ether(units int64, decimals uint) *big.Int {
	wei := new(big.Int).Mul(big.NewInt(units), big.NewInt(1e18))
	if decimals == 0 {
		return wei
	}
	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	return wei.Quo(wei, div)
}

// Wei 返回金额的副本，nil 视为 0。
func Wei(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
