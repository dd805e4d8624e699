package serverconfig

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const weiDecimals = 18

// Ether 是配置里以 ether 书写的金额（例如 "0.025"），解码后保存 wei。
type Ether struct {
	wei *big.Int
}

// EtherFromWei 以 wei 构造金额。
func EtherFromWei(wei *big.Int) Ether {
	if wei == nil {
		return Ether{}
	}
	return Ether{wei: new(big.Int).Set(wei)}
}

func (e Ether) Wei() *big.Int {
	if e.wei == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(e.wei)
}

// ParseEther 把十进制 ether 字符串转成 wei；小数位最多 18 位。
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > weiDecimals {
		return nil, fmt.Errorf("ether amount %q has more than %d decimals", s, weiDecimals)
	}
	digits := whole + frac + strings.Repeat("0", weiDecimals-len(frac))
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid ether amount %q", s)
	}
	return v, nil
}

// EtherHookFunc 让 Ether 字段接受字符串或数字。
func EtherHookFunc() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(Ether{})
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != target {
			return data, nil
		}
		var raw string
		switch v := data.(type) {
		case string:
			raw = v
		case float64:
			raw = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			raw = strconv.Itoa(v)
		case int64:
			raw = strconv.FormatInt(v, 10)
		case uint64:
			raw = strconv.FormatUint(v, 10)
		default:
			return data, nil
		}
		wei, err := ParseEther(raw)
		if err != nil {
			return nil, err
		}
		return Ether{wei: wei}, nil
	}
}
