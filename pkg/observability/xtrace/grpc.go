package xtrace

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/omeyang/xprop/pkg/propagation/xcarrier"
)

// =============================================================================
// gRPC Metadata 提取 / 注入
// =============================================================================

// ExtractFromIncomingContext 从 incoming metadata 提取追踪状态。
// 没有 incoming metadata 时原样返回。p 为 nil 时使用 otel 全局传播器。
func ExtractFromIncomingContext(ctx context.Context, p propagation.TextMapPropagator) context.Context {
	if ctx == nil {
		return ctx
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	return orGlobal(p).Extract(ctx, xcarrier.Metadata(md))
}

// InjectToOutgoingContext 将追踪状态写入 outgoing metadata。
//
// 复制已有的 outgoing metadata 再写入，不修改调用方持有的 MD。
// 传播器没有写出任何键时返回原 ctx。
func InjectToOutgoingContext(ctx context.Context, p propagation.TextMapPropagator) context.Context {
	if ctx == nil {
		return ctx
	}
	out := metadata.MD{}
	orGlobal(p).Inject(ctx, xcarrier.Metadata(out))
	if out.Len() == 0 {
		return ctx
	}

	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	// 使用 Set 覆盖（而非追加），避免多次调用产生重复值
	for k, v := range out {
		md.Set(k, v...)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// =============================================================================
// gRPC 服务端拦截器
// =============================================================================

// UnaryServerInterceptor 返回一元服务端拦截器。
func UnaryServerInterceptor(p propagation.TextMapPropagator, opts ...Option) grpc.UnaryServerInterceptor {
	p = orGlobal(p)
	cfg := applyOptions(opts)

	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(extractIncoming(ctx, p, cfg), req)
	}
}

// StreamServerInterceptor 返回流式服务端拦截器。
func StreamServerInterceptor(p propagation.TextMapPropagator, opts ...Option) grpc.StreamServerInterceptor {
	p = orGlobal(p)
	cfg := applyOptions(opts)

	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := extractIncoming(ss.Context(), p, cfg)
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

func extractIncoming(ctx context.Context, p propagation.TextMapPropagator, cfg *config) context.Context {
	md, _ := metadata.FromIncomingContext(ctx)
	return extract(ctx, p, xcarrier.Metadata(md), cfg)
}

// wrappedServerStream 包装 ServerStream 以覆盖 Context
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context 返回包装后的 context
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// =============================================================================
// gRPC 客户端拦截器
// =============================================================================

// UnaryClientInterceptor 返回一元客户端拦截器，调用前写入 outgoing metadata。
func UnaryClientInterceptor(p propagation.TextMapPropagator) grpc.UnaryClientInterceptor {
	p = orGlobal(p)
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(InjectToOutgoingContext(ctx, p), method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor 返回流式客户端拦截器。
func StreamClientInterceptor(p propagation.TextMapPropagator) grpc.StreamClientInterceptor {
	p = orGlobal(p)
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		return streamer(InjectToOutgoingContext(ctx, p), desc, cc, method, opts...)
	}
}
