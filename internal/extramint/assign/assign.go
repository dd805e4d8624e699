package assign

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	kd "LandKingdom/internal/kingdom/domain"
)

// BatchSize 是每次 AssignSlots 调用携带的用户数。
const BatchSize = 100

// TokenOwner 是地块持有快照里的一行。
type TokenOwner struct {
	Address kd.Address `json:"address"`
	IDs     []uint64   `json:"ids"`
}

// Deposit 是押金名单里的一行。
type Deposit struct {
	Address kd.Address `json:"address"`
	Slots   uint64     `json:"slots"`
}

// Entry 是合并后的名额。
type Entry struct {
	Address kd.Address `json:"address"`
	Slots   uint64     `json:"slots"`
}

// Merge 按地址累加：每块持有的地算 1 个名额，再加上押金名额。名额多的排前面。
func Merge(owners []TokenOwner, deposits []Deposit) []Entry {
	slots := make(map[kd.Address]uint64, len(owners)+len(deposits))
	for _, o := range owners {
		slots[o.Address] += uint64(len(o.IDs))
	}
	for _, d := range deposits {
		slots[d.Address] += d.Slots
	}

	out := make([]Entry, 0, len(slots))
	for a, n := range slots {
		if n == 0 {
			continue
		}
		out = append(out, Entry{Address: a, Slots: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slots != out[j].Slots {
			return out[i].Slots > out[j].Slots
		}
		return out[i].Address.Cmp(out[j].Address) < 0
	})
	return out
}

// Batches 把名单切成不超过 size 的批次。
func Batches(entries []Entry, size int) [][]Entry {
	if size <= 0 {
		size = BatchSize
	}
	var out [][]Entry
	for i := 0; i < len(entries); i += size {
		end := min(i+size, len(entries))
		out = append(out, entries[i:end])
	}
	return out
}

func Total(entries []Entry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Slots
	}
	return n
}

// Split 拆成 AssignSlots 需要的两个并行数组。
func Split(entries []Entry) ([]kd.Address, []uint64) {
	users := make([]kd.Address, len(entries))
	slots := make([]uint64, len(entries))
	for i, e := range entries {
		users[i] = e.Address
		slots[i] = e.Slots
	}
	return users, slots
}

// LoadJSON 读取 JSON 文件；path 为空时 out 保持不变。
func LoadJSON(path string, out any) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
