package xtrace

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xprop/pkg/context/xctx"
)

// =============================================================================
// 选项配置（HTTP 和 gRPC 共用）
// =============================================================================

// Option 中间件/拦截器选项。
type Option func(*config)

type config struct {
	generateRequestID bool
	echoRequestID     bool
}

// WithRequestIDGeneration 入站请求没有 X-Request-Id 时生成一个（UUIDv4）。
//
// 默认关闭：request id 由网关生成，服务内部只透传。
// 生成的 id 写入 context，随后的出站调用会携带它。
func WithRequestIDGeneration(enabled bool) Option {
	return func(cfg *config) {
		cfg.generateRequestID = enabled
	}
}

// WithRequestIDEcho 在 HTTP 响应头中回写 X-Request-Id，便于客户端关联日志。仅对 HTTP 生效。
func WithRequestIDEcho(enabled bool) Option {
	return func(cfg *config) {
		cfg.echoRequestID = enabled
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// orGlobal p 为 nil 时使用 otel 全局传播器。
func orGlobal(p propagation.TextMapPropagator) propagation.TextMapPropagator {
	if p == nil {
		return otel.GetTextMapPropagator()
	}
	return p
}

// =============================================================================
// context 处理
// =============================================================================

// extract 提取入站状态并完成 context 的后续处理：可选生成 request id、同步日志字段。
func extract(ctx context.Context, p propagation.TextMapPropagator, carrier propagation.TextMapCarrier, cfg *config) context.Context {
	ctx = p.Extract(ctx, carrier)
	if cfg.generateRequestID && xctx.RequestID(ctx) == "" {
		if next, err := xctx.WithRequestID(ctx, uuid.NewString()); err == nil {
			ctx = next
		}
	}
	return SyncLogFields(ctx)
}

// SyncLogFields 将 context 中的 span context 镜像到 xctx 的 trace_id/span_id/trace_flags，
// 供 xlog 的 EnrichHandler 读取。没有有效 span context 时原样返回。
func SyncLogFields(ctx context.Context) context.Context {
	if ctx == nil {
		return ctx
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ctx
	}
	// xctx 的 WithXxx 只对 nil ctx 返回错误
	ctx, _ = xctx.WithTraceID(ctx, sc.TraceID().String())
	ctx, _ = xctx.WithSpanID(ctx, sc.SpanID().String())
	ctx, _ = xctx.WithTraceFlags(ctx, sc.TraceFlags().String())
	return ctx
}
