package domain

import "math/big"

// Call 是一次状态变更调用的执行上下文：调用方、附带金额、执行时钟、熵与回执。
type Call struct {
	From    Address
	Value   *big.Int
	Now     int64
	Entropy [32]byte
	Receipt *Receipt
}

// Receipt 收集调用过程中的通知，调用失败时整体丢弃。
type Receipt struct {
	Events []Event
}

func NewCall(from Address, value *big.Int, now int64, entropy [32]byte) *Call {
	return &Call{
		From:    from,
		Value:   Wei(value),
		Now:     now,
		Entropy: entropy,
		Receipt: &Receipt{},
	}
}

// As 派生一个由 from 发起、共享时钟/熵/回执的内部调用（例如分配器代用户铸造）。
func (c *Call) As(from Address) *Call {
	return &Call{
		From:    from,
		Value:   new(big.Int),
		Now:     c.Now,
		Entropy: c.Entropy,
		Receipt: c.Receipt,
	}
}

func (c *Call) Emit(ev Event) {
	if c == nil || c.Receipt == nil {
		return
	}
	c.Receipt.Events = append(c.Receipt.Events, ev)
}

// Paid 返回附带金额，nil 视为 0。
func (c *Call) Paid() *big.Int {
	if c == nil {
		return new(big.Int)
	}
	return Wei(c.Value)
}
