package xb3

import (
	"context"
	"strings"

	"github.com/omeyang/xprop/pkg/context/xctx"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Extract 从入站 carrier 读取追踪状态，返回叠加了新状态的 context。
//
// 步骤顺序固定：
//  1. X-Request-Id 非空时写入专用槽位
//  2. 通用透传请求头逐个写入各自槽位
//  3. 校验 X-B3-TraceId，无效或缺失时返回已累积的 context（不挂载 span）
//  4. 校验 X-B3-SpanId，处理同上
//  5. X-B3-Flags 为 "1" 时设置调试标志并强制采样
//  6. 否则按 X-B3-Sampled 原始值确定采样状态
//
// 透传请求头先于核心字段处理，因此核心字段校验失败时透传值仍然保留。
// 没有错误返回：无效输入等同于未追踪的请求。ctx 或 carrier 为 nil 时原样返回 ctx。
func (p *Propagator) Extract(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	if ctx == nil || carrier == nil {
		return ctx
	}
	p.observe(ctx, Event{Kind: EventExtractStart})

	ctx = p.extractCustomHeaders(ctx, carrier)

	rawTraceID := carrier.Get(HeaderTraceID)
	traceID, ok := ParseTraceID(rawTraceID)
	if !ok {
		if rawTraceID == "" {
			p.observe(ctx, Event{Kind: EventNoTrace})
		} else {
			p.observe(ctx, Event{Kind: EventInvalidTraceID, Header: HeaderTraceID, Value: rawTraceID})
		}
		return ctx
	}

	rawSpanID := carrier.Get(HeaderSpanID)
	spanID, ok := ParseSpanID(rawSpanID)
	if !ok {
		p.observe(ctx, Event{Kind: EventInvalidSpanID, Header: HeaderSpanID, Value: rawSpanID})
		return ctx
	}

	// 调试蕴含采样，此时忽略 X-B3-Sampled
	if carrier.Get(HeaderFlags) == DebugMarker {
		ctx = withValue(ctx, xctx.WithDebug, true)
		return p.attach(ctx, NewSpanContext(traceID, spanID, DebugSampled), true)
	}

	state := ParseSampled(carrier.Get(HeaderSampled))
	return p.attach(ctx, NewSpanContext(traceID, spanID, state), false)
}

func (p *Propagator) attach(ctx context.Context, sc trace.SpanContext, debug bool) context.Context {
	ctx = trace.ContextWithRemoteSpanContext(ctx, sc)
	p.observe(ctx, Event{Kind: EventExtracted, SpanContext: sc, Debug: debug})
	return ctx
}

// extractCustomHeaders 合并 X-Request-Id 与通用透传请求头。
func (p *Propagator) extractCustomHeaders(ctx context.Context, carrier propagation.TextMapCarrier) context.Context {
	if v := carrier.Get(HeaderRequestID); !isBlank(v) {
		ctx = withValue(ctx, xctx.WithRequestID, v)
	}

	for _, e := range p.registry.resolve().generic {
		v := carrier.Get(e.Header)
		if isBlank(v) {
			continue
		}
		if next, err := xctx.WithHeader(ctx, e.Slot, v); err == nil {
			ctx = next
		}
	}
	return ctx
}

// withValue 调用 xctx 的 WithXxx。xctx 只对 nil ctx 返回错误，
// Extract 入口已排除 nil，出错时保持原 ctx。
func withValue[T any](ctx context.Context, set func(context.Context, T) (context.Context, error), v T) context.Context {
	next, err := set(ctx, v)
	if err != nil {
		return ctx
	}
	return next
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
