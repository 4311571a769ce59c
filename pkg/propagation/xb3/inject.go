package xb3

import (
	"context"

	"github.com/omeyang/xprop/pkg/context/xctx"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Inject 将 context 中的追踪状态写入出站 carrier。
//
// context 中没有 span 或 span context 无效时不写任何头。
// 有效时依次写出：X-B3-Flags（仅调试）、X-B3-TraceId、X-B3-SpanId、X-B3-Sampled、
// X-Request-Id（非空时）、通用透传请求头（非空时，按配置时的原始写法）。
// 调试模式下 X-B3-Sampled 强制为 "1"。
// ctx 或 carrier 为 nil 时不做任何事。
func (p *Propagator) Inject(ctx context.Context, carrier propagation.TextMapCarrier) {
	if ctx == nil || carrier == nil {
		return
	}

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		p.observe(ctx, Event{Kind: EventInjectSkipped})
		return
	}

	state := NotSampled
	if sc.IsSampled() {
		state = Sampled
	}

	debug := xctx.Debug(ctx)
	if debug {
		carrier.Set(HeaderFlags, DebugMarker)
		state = DebugSampled
	}

	carrier.Set(HeaderTraceID, sc.TraceID().String())
	carrier.Set(HeaderSpanID, sc.SpanID().String())
	carrier.Set(HeaderSampled, FormatSampled(state))

	p.injectCustomHeaders(ctx, carrier)

	p.observe(ctx, Event{Kind: EventInjected, SpanContext: sc, Debug: debug})
}

// injectCustomHeaders 写出 X-Request-Id 与通用透传请求头。
func (p *Propagator) injectCustomHeaders(ctx context.Context, carrier propagation.TextMapCarrier) {
	if v := xctx.RequestID(ctx); !isBlank(v) {
		carrier.Set(HeaderRequestID, v)
	}

	for _, e := range p.registry.resolve().generic {
		if v := xctx.Header(ctx, e.Slot); !isBlank(v) {
			carrier.Set(e.Header, v)
		}
	}
}
