package ledger

import (
	"errors"
	"math/big"
	"testing"

	"LandKingdom/internal/kingdom/domain"
)

func TestWallet_转账与余额不足(t *testing.T) {
	w := NewWallet()
	w.Credit(alice, domain.Ether(1, 0))
	if err := w.Transfer(alice, bob, domain.Ether(4, 1)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if w.BalanceOf(bob).Cmp(domain.Ether(4, 1)) != 0 || w.BalanceOf(alice).Cmp(domain.Ether(6, 1)) != 0 {
		t.Fatalf("余额不符 alice=%s bob=%s", w.BalanceOf(alice), w.BalanceOf(bob))
	}
	if err := w.Transfer(alice, bob, domain.Ether(1, 0)); !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("期望 ErrInsufficientBalance, got=%v", err)
	}
}

func TestWallet_拒收时撤销本笔记账(t *testing.T) {
	w := NewWallet()
	w.Credit(alice, domain.Ether(1, 0))
	w.SetReceiver(bob, RejectAll)
	err := w.Transfer(alice, bob, domain.Ether(5, 1))
	if !errors.Is(err, ErrReceiverRejected) {
		t.Fatalf("期望 ErrReceiverRejected, got=%v", err)
	}
	if w.BalanceOf(alice).Cmp(domain.Ether(1, 0)) != 0 || w.BalanceOf(bob).Sign() != 0 {
		t.Fatalf("拒收后余额应恢复 alice=%s bob=%s", w.BalanceOf(alice), w.BalanceOf(bob))
	}
}

func TestWallet_钩子收到金额(t *testing.T) {
	w := NewWallet()
	w.Credit(alice, domain.Ether(1, 0))
	var got *big.Int
	w.SetReceiver(carol, ReceiverFunc(func(from domain.Address, amount *big.Int) error {
		if from != alice {
			t.Fatalf("钩子来源不符: %s", from.Hex())
		}
		got = amount
		return nil
	}))
	if err := w.Transfer(alice, carol, domain.Ether(2, 1)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got == nil || got.Cmp(domain.Ether(2, 1)) != 0 {
		t.Fatalf("钩子金额不符: %v", got)
	}
}

func TestWallet_Clone余额独立(t *testing.T) {
	w := NewWallet()
	w.Credit(alice, big.NewInt(10))
	cp := w.Clone()
	cp.Credit(alice, big.NewInt(5))
	if w.BalanceOf(alice).Int64() != 10 {
		t.Fatalf("原钱包余额不应被副本修改, got=%s", w.BalanceOf(alice))
	}
}
