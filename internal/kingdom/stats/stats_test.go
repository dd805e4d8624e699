package stats

import (
	"testing"

	"LandKingdom/internal/kingdom/domain"
)

func entropy(b byte) [32]byte {
	var e [32]byte
	for i := range e {
		e[i] = b + byte(i)
	}
	return e
}

func TestRoll_逐级升阶总和在区间内(t *testing.T) {
	eng := NewEngine(8)
	for n := byte(0); n < 50; n++ {
		var cur domain.Stats
		for tier := domain.Tier(1); tier <= domain.MaxTier; tier++ {
			d := eng.Roll(Seed(entropy(n), domain.LandID(n), tier), cur, tier)
			cur = cur.Add(d)
			lo, hi := Bounds(tier)
			if cur.Total() < lo || cur.Total() > hi {
				t.Fatalf("tier=%d 总和 %d 不在 [%d,%d]", tier, cur.Total(), lo, hi)
			}
		}
	}
}

func TestRoll_同一种子可复现(t *testing.T) {
	eng := NewEngine(8)
	seed := Seed(entropy(7), 42, 2)
	prev := domain.Stats{Fertility: 10, Wealth: 12, Defense: 13, Prestige: 14}
	a := eng.Roll(seed, prev, 2)
	b := eng.Roll(seed, prev, 2)
	if a != b {
		t.Fatalf("同种子期望相同结果, a=%+v b=%+v", a, b)
	}
	if eng.RollAppearance(seed) != eng.RollAppearance(seed) {
		t.Fatalf("外观抽取期望可复现")
	}
}

func TestRoll_超过上界不再增长(t *testing.T) {
	eng := NewEngine(8)
	prev := domain.Stats{Fertility: 100}
	if d := eng.Roll(Seed(entropy(1), 5, 2), prev, 2); d != (domain.Stats{}) {
		t.Fatalf("总和已超上界时增量应为 0, got=%+v", d)
	}
}

func TestRoll_低于下界补齐到区间(t *testing.T) {
	eng := NewEngine(8)
	prev := domain.Stats{Fertility: 1}
	d := eng.Roll(Seed(entropy(3), 9, 4), prev, 4)
	total := prev.Add(d).Total()
	lo, hi := Bounds(4)
	if total < lo || total > hi {
		t.Fatalf("总和 %d 不在 [%d,%d]", total, lo, hi)
	}
}

func TestSeed_随地块与等级变化(t *testing.T) {
	e := entropy(9)
	if Seed(e, 1, 1) == Seed(e, 2, 1) || Seed(e, 1, 1) == Seed(e, 1, 2) {
		t.Fatalf("不同地块/等级应派生不同种子")
	}
}

func TestRollAppearance_在变体范围内(t *testing.T) {
	eng := NewEngine(3)
	for n := byte(0); n < 30; n++ {
		if v := eng.RollAppearance(entropy(n)); v >= 3 {
			t.Fatalf("外观编号越界: %d", v)
		}
	}
}
