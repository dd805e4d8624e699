package sigauth

import (
	"errors"
	"math/big"
	"testing"

	"LandKingdom/internal/kingdom/domain"

	"github.com/ethereum/go-ethereum/crypto"
)

func newSigner(t *testing.T) *Signer {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return NewSigner(key)
}

func TestMessage_Canonical(t *testing.T) {
	m := Message{LandID: 12, Protected: true, Name: "北境", ExpiresAt: 1700000000}
	want := "landId:12/landProtected:true/name:北境/expiredAt:1700000000"
	if got := m.Canonical(); got != want {
		t.Fatalf("原文不符, got=%q want=%q", got, want)
	}
}

func TestVerify_正确签名通过(t *testing.T) {
	s := newSigner(t)
	m := Message{LandID: 4, Name: "", ExpiresAt: 2000}
	sig, err := s.Sign(m)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := Verify(s.Address(), m, sig, 1000); err != nil {
		t.Fatalf("期望通过, got=%v", err)
	}
	// V 为 0/1 也应被接受
	sig[64] -= 27
	if err := Verify(s.Address(), m, sig, 1000); err != nil {
		t.Fatalf("V=0/1 期望通过, got=%v", err)
	}
}

func TestVerify_过期优先于签名校验(t *testing.T) {
	s := newSigner(t)
	m := Message{LandID: 4, ExpiresAt: 999}
	if err := Verify(s.Address(), m, []byte("garbage"), 1000); !errors.Is(err, domain.ErrSignatureExpired) {
		t.Fatalf("期望 SignatureExpired, got=%v", err)
	}
}

func TestVerify_等于当前时间不算过期(t *testing.T) {
	s := newSigner(t)
	m := Message{LandID: 4, ExpiresAt: 1000}
	sig, _ := s.Sign(m)
	if err := Verify(s.Address(), m, sig, 1000); err != nil {
		t.Fatalf("expiresAt == now 期望通过, got=%v", err)
	}
}

func TestVerify_签名者不符或内容被改(t *testing.T) {
	s := newSigner(t)
	other := newSigner(t)
	m := Message{LandID: 4, ExpiresAt: 2000}
	sig, _ := other.Sign(m)
	if err := Verify(s.Address(), m, sig, 1000); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("期望 InvalidSignature, got=%v", err)
	}

	sig, _ = s.Sign(m)
	tampered := m
	tampered.Protected = true
	if err := Verify(s.Address(), tampered, sig, 1000); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("改动内容后期望 InvalidSignature, got=%v", err)
	}

	if err := Verify(s.Address(), m, []byte{1, 2, 3}, 1000); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("长度不合法期望 InvalidSignature, got=%v", err)
	}
}

func TestVerify_高位s拒绝(t *testing.T) {
	s := newSigner(t)
	m := Message{LandID: 4, ExpiresAt: 2000}
	sig, err := s.Sign(m)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// 同一签名的另一半：s' = N - s，恢复位翻转，签名者不变。
	n := crypto.S256().Params().N
	low := new(big.Int).SetBytes(sig[32:64])
	high := new(big.Int).Sub(n, low)
	flipped := make([]byte, len(sig))
	copy(flipped, sig)
	high.FillBytes(flipped[32:64])
	flipped[64] = 55 - flipped[64]

	if err := Verify(s.Address(), m, flipped, 1000); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("高位 s 期望 InvalidSignature, got=%v", err)
	}
	if err := Verify(s.Address(), m, sig, 1000); err != nil {
		t.Fatalf("原签名应仍可通过, got=%v", err)
	}
}
