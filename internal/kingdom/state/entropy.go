package state

// Entropy 是熵链的进度，随快照落库，重启后从断点继续。
type Entropy struct {
	Prev [32]byte
	Seq  uint64
}

// Started 报告熵链是否已经起链。
func (e Entropy) Started() bool {
	return e.Seq > 0 || e.Prev != [32]byte{}
}
