package actors

import (
	"errors"
	"reflect"
	"testing"

	"LandKingdom/internal/kingdom/state"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/modules/kit/errx"

	"github.com/ethereum/go-ethereum/common"
)

func TestEntropyChain_同种子同序列(t *testing.T) {
	seed := [32]byte{1}
	from := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	a, b := NewEntropyChain(seed), NewEntropyChain(seed)
	first := a.Next(from, 100)
	if first != b.Next(from, 100) {
		t.Fatalf("同种子应得到相同熵")
	}
	if a.Next(from, 100) == first {
		t.Fatalf("相邻调用的熵不应相同")
	}
}

func TestEntropyChain_从快照续链(t *testing.T) {
	seed := [32]byte{7}
	from := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	var live state.Entropy
	a := ResumeEntropyChain(seed, &live)
	a.Next(from, 100)
	a.Next(from, 101)

	restored := live
	b := ResumeEntropyChain(seed, &restored)
	if b.Next(from, 102) != a.Next(from, 102) {
		t.Fatalf("续链后应与不中断的链一致")
	}
	if restored.Seq != 3 {
		t.Fatalf("序号应继续递增，得到 %d", restored.Seq)
	}

	fresh := NewEntropyChain(seed)
	if fresh.Next(from, 100) == b.Next(from, 103) {
		t.Fatalf("续链不应回到种子起点")
	}
}

func TestDispatcher_命令名取类型名(t *testing.T) {
	d := NewDispatcher()
	h, ok := d.handlers[reflect.TypeOf(&messages.Purchase{})]
	if !ok || h.op != "Purchase" {
		t.Fatalf("期望注册 Purchase，得到 %+v", h)
	}
	if _, ok := d.handlers[reflect.TypeOf(&messages.GetLand{})]; !ok {
		t.Fatalf("期望注册 GetLand 查询")
	}
	if h, ok := d.handlers[reflect.TypeOf(&messages.SetExtraMintMinter{})]; !ok || h.op != "SetExtraMintMinter" {
		t.Fatalf("期望注册 SetExtraMintMinter，得到 %+v", h)
	}
}

func TestResultCode_非领域错误归为内部错误(t *testing.T) {
	if resultCode(nil) != "" {
		t.Fatalf("成功应为空码")
	}
	if resultCode(errors.New("boom")) != string(errx.CodeInternal) {
		t.Fatalf("普通错误应归为内部错误")
	}
	if resultCode(errx.ErrTimeout) != string(errx.CodeTimeout) {
		t.Fatalf("领域错误应保留原码")
	}
}
