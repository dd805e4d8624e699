// Package security 签发与校验调用方令牌：HS256，subject 为钱包地址。
package security

import (
	"errors"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SecretEnv  = "JWT_SECRET"
	issuer     = "landkingdom"
	defaultTTL = 7 * 24 * time.Hour
	leeway     = 30 * time.Second
)

var (
	ErrJWTSecretMissing = errors.New(SecretEnv + " is not set")
	ErrInvalidAddress   = errors.New("token subject is not an address")
)

type Claims struct {
	jwt.RegisteredClaims
}

// Caller 返回 subject 里的钱包地址；接口层据此确定每次调用的 From。
func (c *Claims) Caller() (common.Address, error) {
	if c == nil || !common.IsHexAddress(c.Subject) {
		return common.Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(c.Subject), nil
}

func secret() ([]byte, error) {
	s := os.Getenv(SecretEnv)
	if s == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(s), nil
}

// Award 为地址签发令牌，默认 7 天过期。
func Award(addr common.Address) (string, error) {
	return AwardWithTTL(addr, defaultTTL)
}

func AwardWithTTL(addr common.Address, ttl time.Duration) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   addr.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ParseToken 校验签名、签发方与有效期，返回声明。
func ParseToken(raw string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
