package xctx

import "errors"

// =============================================================================
// Context Key 类型定义
// =============================================================================

// contextKey 固定字段（trace/request/debug）使用的 key 类型。
// 包私有类型，不会与其他包的 context key 冲突。
type contextKey string

// slotKey 透传请求头槽位使用的 key 类型。
// 与 contextKey 类型不同，两类 key 即使底层值相同也不会互相覆盖。
type slotKey Slot

// =============================================================================
// 通用错误
// =============================================================================

var (
	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xctx: nil context")

	// ErrInvalidSlot 表示使用了未分配的槽位（零值 Slot）。
	ErrInvalidSlot = errors.New("xctx: invalid slot")
)
