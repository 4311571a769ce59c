package xb3

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/trace"
)

// EventKind 观测事件类型。
type EventKind uint8

const (
	// EventExtractStart 开始提取。
	EventExtractStart EventKind = iota + 1
	// EventNoTrace 入站请求不带 X-B3-TraceId，按未追踪请求处理。
	EventNoTrace
	// EventInvalidTraceID X-B3-TraceId 校验失败。
	EventInvalidTraceID
	// EventInvalidSpanID X-B3-SpanId 缺失或校验失败。
	EventInvalidSpanID
	// EventExtracted 已挂载 span context。
	EventExtracted
	// EventInjectSkipped context 中没有有效 span，注入未写任何头。
	EventInjectSkipped
	// EventInjected 注入完成。
	EventInjected
)

// String 返回事件类型名称，用于日志和指标标签。
func (k EventKind) String() string {
	switch k {
	case EventExtractStart:
		return "extract_start"
	case EventNoTrace:
		return "no_trace"
	case EventInvalidTraceID:
		return "invalid_trace_id"
	case EventInvalidSpanID:
		return "invalid_span_id"
	case EventExtracted:
		return "extracted"
	case EventInjectSkipped:
		return "inject_skipped"
	case EventInjected:
		return "injected"
	default:
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsFailure 判断是否为校验失败类事件。
func (k EventKind) IsFailure() bool {
	return k == EventInvalidTraceID || k == EventInvalidSpanID
}

// Event 观测事件。
type Event struct {
	Kind EventKind
	// Header 校验失败时为出错的请求头名称。
	Header string
	// Value 校验失败时为原始值。
	Value string
	// SpanContext 提取或注入的 span context（仅 EventExtracted/EventInjected）。
	SpanContext trace.SpanContext
	// Debug 是否处于 B3 调试模式。
	Debug bool
}

// Observer 观测钩子。传播器在固定节点同步调用，实现应保持轻量且不能 panic。
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc 函数适配器。
type ObserverFunc func(ctx context.Context, e Event)

// Observe 实现 Observer。
func (f ObserverFunc) Observe(ctx context.Context, e Event) {
	if f != nil {
		f(ctx, e)
	}
}

// NoopObserver 空实现。
type NoopObserver struct{}

// Observe 空实现。
func (NoopObserver) Observe(context.Context, Event) {}
