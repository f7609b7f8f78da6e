package calendar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator 生成 UID 中的随机后缀
type IDGenerator interface {
	NewID() string
}

// RandomIDGenerator 使用 uuid 的前 12 位十六进制字符作为后缀，不保证全局唯一
type RandomIDGenerator struct{}

func (RandomIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// SequenceIDGenerator 生成可预测的后缀，主要用于测试
type SequenceIDGenerator struct {
	mu     sync.Mutex
	Prefix string
	next   int
}

func (g *SequenceIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("%s%d", g.Prefix, g.next)
}
