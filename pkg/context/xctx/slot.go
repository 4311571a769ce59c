package xctx

import (
	"context"
	"strconv"
	"sync/atomic"
)

// =============================================================================
// 透传请求头槽位
// =============================================================================

// Slot 透传请求头在 context 中的存储槽位。
//
// 槽位在注册表构建时一次性分配，之后保持稳定；context 按槽位编号存取，
// 不再按请求头字符串动态查找。零值 Slot 无效。
type Slot uint32

// slotSeq 进程级槽位序号，保证不同注册表分配的槽位互不冲突。
var slotSeq atomic.Uint32

// NewSlot 分配一个新的槽位。并发安全，返回值从 1 开始单调递增。
func NewSlot() Slot {
	return Slot(slotSeq.Add(1))
}

// Valid 判断槽位是否已分配。
func (s Slot) Valid() bool {
	return s != 0
}

// String 返回槽位的可读表示，用于调试和日志。
func (s Slot) String() string {
	return "slot#" + strconv.FormatUint(uint64(s), 10)
}

// WithHeader 将透传请求头的值写入指定槽位。
//
// 写入不修改原 context，返回叠加了新值的 context。
// ctx 为 nil 返回 ErrNilContext；零值槽位返回 ErrInvalidSlot。
func WithHeader(ctx context.Context, slot Slot, value string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if !slot.Valid() {
		return nil, ErrInvalidSlot
	}
	return context.WithValue(ctx, slotKey(slot), value), nil
}

// Header 读取指定槽位的透传值，未设置返回空字符串。
func Header(ctx context.Context, slot Slot) string {
	v, _ := LookupHeader(ctx, slot)
	return v
}

// LookupHeader 读取指定槽位的透传值，ok 表示槽位是否被写入过。
func LookupHeader(ctx context.Context, slot Slot) (string, bool) {
	if ctx == nil || !slot.Valid() {
		return "", false
	}
	v, ok := ctx.Value(slotKey(slot)).(string)
	return v, ok
}
