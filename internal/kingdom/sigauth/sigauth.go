package sigauth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"LandKingdom/internal/kingdom/domain"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// Message 是链下签发的授权内容。
type Message struct {
	LandID    domain.LandID
	Protected bool
	Name      string
	ExpiresAt int64
}

// Canonical 返回签名原文：landId:%d/landProtected:%t/name:%s/expiredAt:%d。
func (m Message) Canonical() string {
	return fmt.Sprintf("landId:%d/landProtected:%t/name:%s/expiredAt:%d", m.LandID, m.Protected, m.Name, m.ExpiresAt)
}

// Digest 返回 keccak256(原文) 再做 EIP-191 personal_sign 前缀后的摘要。
func (m Message) Digest() []byte {
	inner := crypto.Keccak256([]byte(m.Canonical()))
	return accounts.TextHash(inner)
}

// Verify 校验授权：先看过期，再恢复签名者与 verifier 比对。
func Verify(verifier domain.Address, m Message, signature []byte, now int64) error {
	if m.ExpiresAt < now {
		return domain.ErrSignatureExpired.WithData("expiresAt", m.ExpiresAt)
	}
	signer, err := Recover(m, signature)
	if err != nil {
		return domain.ErrInvalidSignature.WithCause(err)
	}
	if signer != verifier {
		return domain.ErrInvalidSignature.WithData("signer", signer.Hex())
	}
	return nil
}

var errMalleableSignature = errors.New("signature values out of range")

// Recover 从 65 字节签名中恢复签名者地址；V 兼容 27/28 与 0/1，s 必须落在低半区。
func Recover(m Message, signature []byte) (domain.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return domain.ZeroAddress, fmt.Errorf("signature length %d", len(signature))
	}
	sig := make([]byte, len(signature))
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	r, s := new(big.Int).SetBytes(sig[:32]), new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[crypto.RecoveryIDOffset], r, s, true) {
		return domain.ZeroAddress, errMalleableSignature
	}
	pub, err := crypto.SigToPub(m.Digest(), sig)
	if err != nil {
		return domain.ZeroAddress, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Signer 是链下签发方的最小实现，供测试与开发工具使用。
type Signer struct {
	key *ecdsa.PrivateKey
}

func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

// NewSignerFromHex 从十六进制私钥构造签发方。
func NewSignerFromHex(hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, err
	}
	return &Signer{key: key}, nil
}

func (s *Signer) Address() domain.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// Sign 返回 V 为 27/28 的 65 字节签名，与钱包 personal_sign 一致。
func (s *Signer) Sign(m Message) ([]byte, error) {
	sig, err := crypto.Sign(m.Digest(), s.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
