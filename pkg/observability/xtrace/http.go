package xtrace

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/propagation"

	"github.com/omeyang/xprop/pkg/context/xctx"
	"github.com/omeyang/xprop/pkg/propagation/xb3"
)

// =============================================================================
// HTTP 中间件
// =============================================================================

// HTTPMiddleware 返回 HTTP 中间件：用 p 从请求头提取追踪状态并写入请求 context。
// p 为 nil 时使用 otel 全局传播器。
func HTTPMiddleware(p propagation.TextMapPropagator, opts ...Option) func(http.Handler) http.Handler {
	p = orGlobal(p)
	cfg := applyOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := extract(r.Context(), p, propagation.HeaderCarrier(r.Header), cfg)

			if cfg.echoRequestID {
				if id := xctx.RequestID(ctx); id != "" {
					w.Header().Set(xb3.HeaderRequestID, id)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// =============================================================================
// HTTP Header 注入（跨服务传播）
// =============================================================================

// InjectToRequest 将 context 中的追踪状态写入请求头。p 为 nil 时使用 otel 全局传播器。
func InjectToRequest(ctx context.Context, p propagation.TextMapPropagator, req *http.Request) {
	if req == nil || ctx == nil {
		return
	}
	// 防止调用方构造 &http.Request{} 导致 nil Header panic
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	orGlobal(p).Inject(ctx, propagation.HeaderCarrier(req.Header))
}

// Transport 返回在每个出站请求上注入追踪状态的 RoundTripper。
// base 为 nil 时使用 http.DefaultTransport。
func Transport(p propagation.TextMapPropagator, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{p: orGlobal(p), base: base}
}

type transport struct {
	p    propagation.TextMapPropagator
	base http.RoundTripper
}

// RoundTrip 克隆请求后注入，RoundTripper 不能修改调用方的请求。
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	t.p.Inject(req.Context(), propagation.HeaderCarrier(out.Header))
	return t.base.RoundTrip(out)
}
