package xctx

import (
	"context"
)

// =============================================================================
// Trace 日志属性 Key 常量
// =============================================================================

// Trace Key 常量，遵循 OpenTelemetry 语义约定（下划线分隔）
const (
	KeyTraceID    = "trace_id"
	KeySpanID     = "span_id"
	KeyRequestID  = "request_id"
	KeyTraceFlags = "trace_flags"
	KeyB3Debug    = "b3_debug"

	// traceFieldCount 追踪字段数量（用于 slog 属性预分配）
	traceFieldCount = 5
)

// =============================================================================
// Trace Context Key 定义
// =============================================================================

const (
	keyTraceID    = contextKey("xctx:trace_id")
	keySpanID     = contextKey("xctx:span_id")
	keyRequestID  = contextKey("xctx:request_id")
	keyTraceFlags = contextKey("xctx:trace_flags")
	keyB3Debug    = contextKey("xctx:b3_debug")
)

// =============================================================================
// TraceID / SpanID / TraceFlags 操作
//
// 这三个字段是 span context 的日志镜像：权威值保存在 OTel span context 中，
// 这里只存字符串形式，供 xlog 的 EnrichHandler 读取。
// =============================================================================

// WithTraceID 将 trace ID 注入 context
//
// 如果 ctx 为 nil，返回 ErrNilContext。
func WithTraceID(ctx context.Context, traceID string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyTraceID, traceID), nil
}

// TraceID 从 context 提取 trace ID，不存在返回空字符串
func TraceID(ctx context.Context) string {
	return stringValue(ctx, keyTraceID)
}

// WithSpanID 将 span ID 注入 context
//
// 如果 ctx 为 nil，返回 ErrNilContext。
func WithSpanID(ctx context.Context, spanID string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keySpanID, spanID), nil
}

// SpanID 从 context 提取 span ID，不存在返回空字符串
func SpanID(ctx context.Context) string {
	return stringValue(ctx, keySpanID)
}

// WithTraceFlags 将 trace flags 注入 context
//
// 格式: 2位十六进制字符串（如 "01" 表示已采样，"00" 表示未采样）。
// 如果 ctx 为 nil，返回 ErrNilContext。
func WithTraceFlags(ctx context.Context, flags string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyTraceFlags, flags), nil
}

// TraceFlags 从 context 提取 trace flags，不存在返回空字符串
func TraceFlags(ctx context.Context) string {
	return stringValue(ctx, keyTraceFlags)
}

// =============================================================================
// RequestID 操作
// =============================================================================

// WithRequestID 将 request ID 注入 context
//
// request ID 是不透明的关联字符串（X-Request-Id），拥有专用槽位，
// 不参与通用透传请求头的处理。
// 如果 ctx 为 nil，返回 ErrNilContext。
func WithRequestID(ctx context.Context, requestID string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyRequestID, requestID), nil
}

// RequestID 从 context 提取 request ID，不存在返回空字符串
func RequestID(ctx context.Context) string {
	return stringValue(ctx, keyRequestID)
}

// =============================================================================
// B3 调试标志
// =============================================================================

// WithDebug 设置 B3 调试标志（X-B3-Flags: 1）。
//
// 调试标志与采样标志分开记录：注入端据此重新输出 X-B3-Flags 头。
// 如果 ctx 为 nil，返回 ErrNilContext。
func WithDebug(ctx context.Context, debug bool) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyB3Debug, debug), nil
}

// Debug 返回 context 中的 B3 调试标志，未设置时返回 false。
func Debug(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(keyB3Debug).(bool)
	return v
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// =============================================================================
// Trace 结构体
// =============================================================================

// Trace 追踪信息的批量读取结果。
type Trace struct {
	TraceID    string
	SpanID     string
	RequestID  string
	TraceFlags string
	Debug      bool
}

// GetTrace 批量读取 context 中的追踪信息，缺失字段为零值。
func GetTrace(ctx context.Context) Trace {
	return Trace{
		TraceID:    TraceID(ctx),
		SpanID:     SpanID(ctx),
		RequestID:  RequestID(ctx),
		TraceFlags: TraceFlags(ctx),
		Debug:      Debug(ctx),
	}
}
