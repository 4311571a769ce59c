package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xprop/pkg/propagation/xb3"
)

type spanObserver struct{}

// Span 返回把校验失败记录到当前 span 的观测者。
//
// 提取发生在服务端 span 创建之前时，context 中没有正在记录的 span，事件被丢弃；
// 典型用法是在已有 span 的链路上再次提取（如消息消费）。
func Span() xb3.Observer {
	return spanObserver{}
}

func (spanObserver) Observe(ctx context.Context, e xb3.Event) {
	if !e.Kind.IsFailure() {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("b3."+e.Kind.String(), trace.WithAttributes(
		attribute.String("header", e.Header),
		attribute.String("value", e.Value),
	))
}
