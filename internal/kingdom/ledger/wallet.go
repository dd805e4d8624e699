package ledger

import (
	"errors"
	"math/big"

	"LandKingdom/internal/kingdom/domain"
)

// ErrReceiverRejected 表示接收方拒收（接收钩子返回错误）。
var ErrReceiverRejected = errors.New("ledger: receiver rejected value")

// Receiver 是可执行代码的收款方：入账后被回调，返回错误则整笔转账撤销。
// 回调可以重入注册表，此时看到的是已经定稿的状态。
type Receiver interface {
	OnReceive(from domain.Address, amount *big.Int) error
}

// ReceiverFunc 让普通函数实现 Receiver。
type ReceiverFunc func(from domain.Address, amount *big.Int) error

func (f ReceiverFunc) OnReceive(from domain.Address, amount *big.Int) error {
	return f(from, amount)
}

// RejectAll 永远拒收的接收方（模拟不接收转账的合约）。
var RejectAll Receiver = ReceiverFunc(func(domain.Address, *big.Int) error { return ErrReceiverRejected })

// Wallet 是价值账本：地址余额加上可选的接收钩子。
type Wallet struct {
	balances  map[domain.Address]*big.Int
	receivers map[domain.Address]Receiver
}

func NewWallet() *Wallet {
	return &Wallet{
		balances:  make(map[domain.Address]*big.Int),
		receivers: make(map[domain.Address]Receiver),
	}
}

func (w *Wallet) BalanceOf(a domain.Address) *big.Int {
	return domain.Wei(w.balances[a])
}

// Credit 直接入账（开发水龙头/初始资金），不触发钩子。
func (w *Wallet) Credit(a domain.Address, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	cur := w.balances[a]
	if cur == nil {
		cur = new(big.Int)
	}
	w.balances[a] = cur.Add(cur, amount)
}

// Debit 扣款，余额不足返回 ErrInsufficientBalance。
func (w *Wallet) Debit(a domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}
	cur := w.balances[a]
	if cur == nil || cur.Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance.WithData("address", a.Hex())
	}
	cur.Sub(cur, amount)
	if cur.Sign() == 0 {
		delete(w.balances, a)
	}
	return nil
}

// SetReceiver 为地址挂接收钩子；nil 表示普通账户。
func (w *Wallet) SetReceiver(a domain.Address, r Receiver) {
	if r == nil {
		delete(w.receivers, a)
		return
	}
	w.receivers[a] = r
}

// HasReceiver 报告地址是否挂了接收钩子。
func (w *Wallet) HasReceiver(a domain.Address) bool {
	_, ok := w.receivers[a]
	return ok
}

// Transfer 从 from 转给 to：先记账再回调钩子，钩子拒收则撤销本笔记账并返回错误。
func (w *Wallet) Transfer(from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if err := w.Debit(from, amount); err != nil {
		return err
	}
	w.Credit(to, amount)
	r, ok := w.receivers[to]
	if !ok {
		return nil
	}
	if err := r.OnReceive(from, domain.Wei(amount)); err != nil {
		// 只撤销本笔记账；钩子重入产生的其它副作用由调用方的 state.Atomic 撤销。
		if derr := w.Debit(to, amount); derr == nil {
			w.Credit(from, amount)
		}
		return errors.Join(ErrReceiverRejected, err)
	}
	return nil
}

func (w *Wallet) Balances() map[domain.Address]*big.Int {
	out := make(map[domain.Address]*big.Int, len(w.balances))
	for a, v := range w.balances {
		out[a] = domain.Wei(v)
	}
	return out
}

// Clone 复制余额；接收钩子是代码不是状态，按引用共享。
func (w *Wallet) Clone() *Wallet {
	cp := NewWallet()
	for a, v := range w.balances {
		cp.balances[a] = domain.Wei(v)
	}
	for a, r := range w.receivers {
		cp.receivers[a] = r
	}
	return cp
}
