package xb3

import (
	"context"

	"github.com/omeyang/xprop/pkg/context/xctx"

	"go.opentelemetry.io/otel/trace"
)

// State 传播器写入 context 的状态视图，用于调试输出和测试断言。
type State struct {
	SpanContext trace.SpanContext
	Sampled     SampledState
	Debug       bool
	RequestID   string
	// Headers 透传请求头的值，key 为配置时的原始写法。只包含已写入的槽位。
	Headers map[string]string
}

// State 读取 context 中与本传播器相关的状态。会触发注册表初始化。
func (p *Propagator) State(ctx context.Context) State {
	if ctx == nil {
		return State{}
	}
	sc := trace.SpanContextFromContext(ctx)
	st := State{
		SpanContext: sc,
		Debug:       xctx.Debug(ctx),
		RequestID:   xctx.RequestID(ctx),
	}
	switch {
	case sc.IsValid() && st.Debug:
		st.Sampled = DebugSampled
	case sc.IsSampled():
		st.Sampled = Sampled
	}

	for _, e := range p.registry.resolve().generic {
		if v, ok := xctx.LookupHeader(ctx, e.Slot); ok {
			if st.Headers == nil {
				st.Headers = make(map[string]string)
			}
			st.Headers[e.Header] = v
		}
	}
	return st
}
