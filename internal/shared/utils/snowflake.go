package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 事件 id 布局：41 位毫秒时间 | 10 位节点 | 12 位序号。
const (
	// 2025-01-01 00:00:00 UTC
	epochMilli int64 = 1735689600000

	nodeBits = 10
	seqBits  = 12

	MaxNode int64 = 1<<nodeBits - 1
	maxSeq  int64 = 1<<seqBits - 1
)

// Snowflake 为推送事件生成全局唯一 id；同一生成器内严格递增，客户端据此去重与排序。
type Snowflake struct {
	mu     sync.Mutex
	node   int64
	lastMs int64
	seq    int64
	now    func() time.Time
}

func NewSnowflake(node int64) (*Snowflake, error) {
	if node < 0 || node > MaxNode {
		return nil, fmt.Errorf("snowflake node out of range [0,%d]: %d", MaxNode, node)
	}
	return &Snowflake{node: node, now: time.Now}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	switch {
	case ms > s.lastMs:
		s.seq = 0
	default:
		// 同一毫秒或时钟回拨：沿用上一个时间戳；序号用尽时借用下一毫秒。
		ms = s.lastMs
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			ms++
		}
	}
	s.lastMs = ms
	return (ms-epochMilli)<<(nodeBits+seqBits) | s.node<<seqBits | s.seq
}

// TimeOf 还原 id 里的生成时间。
func TimeOf(id int64) time.Time {
	return time.UnixMilli(id>>(nodeBits+seqBits) + epochMilli)
}

// NodeOf 还原 id 里的节点号。
func NodeOf(id int64) int64 {
	return id >> seqBits & MaxNode
}

var (
	defaultOnce sync.Once
	defaultGen  *Snowflake
	defaultErr  error
)

// DefaultSnowflake 的节点号取自 SNOWFLAKE_NODE_ID，未设置时为 1。
func DefaultSnowflake() (*Snowflake, error) {
	defaultOnce.Do(func() {
		node := int64(1)
		if raw := strings.TrimSpace(os.Getenv("SNOWFLAKE_NODE_ID")); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				defaultErr = fmt.Errorf("invalid SNOWFLAKE_NODE_ID: %w", err)
				return
			}
			node = parsed
		}
		defaultGen, defaultErr = NewSnowflake(node)
	})
	return defaultGen, defaultErr
}
