package xautoprop

import (
	"sync/atomic"

	"go.opentelemetry.io/otel/propagation"

	"github.com/omeyang/xprop/pkg/propagation/xb3"
	"github.com/omeyang/xprop/pkg/propagation/xheaders"
)

// 内置传播器名称。
const (
	NameTraceContext = "tracecontext"
	NameBaggage      = "baggage"
	NameB3MultiExt   = xb3.Name
)

// Provider 具名传播器提供者。
//
// Propagator 在 Build 时调用，可以返回共享实例。
type Provider interface {
	Name() string
	Propagator() propagation.TextMapPropagator
}

type funcProvider struct {
	name string
	fn   func() propagation.TextMapPropagator
}

func (p funcProvider) Name() string                              { return p.name }
func (p funcProvider) Propagator() propagation.TextMapPropagator { return p.fn() }

// NewProvider 由名称和构造函数创建 Provider。
func NewProvider(name string, fn func() propagation.TextMapPropagator) Provider {
	return funcProvider{name: name, fn: fn}
}

func builtinProviders() []Provider {
	return []Provider{
		NewProvider(NameTraceContext, func() propagation.TextMapPropagator { return propagation.TraceContext{} }),
		NewProvider(NameBaggage, func() propagation.TextMapPropagator { return propagation.Baggage{} }),
		NewProvider(NameB3MultiExt, func() propagation.TextMapPropagator { return B3MultiExt() }),
	}
}

// =============================================================================
// 进程级 b3multi-ext 实例
// =============================================================================

var b3multi atomic.Pointer[xb3.Propagator]

// B3MultiExt 返回进程级 b3multi-ext 传播器。
//
// 未经 ConfigureB3MultiExt 配置时，首次调用创建一个从环境变量
// XPROP_PROPAGATE_REQUEST_HEADERS 读取透传请求头的实例。创建本身不读取配置，
// 并发首次调用时只有一个实例胜出，其余调用返回同一实例。
func B3MultiExt() *xb3.Propagator {
	if p := b3multi.Load(); p != nil {
		return p
	}
	p := xb3.New(xb3.WithHeaderSource(xheaders.FromEnv()))
	if b3multi.CompareAndSwap(nil, p) {
		return p
	}
	return b3multi.Load()
}

// ConfigureB3MultiExt 在进程启动时安装显式构建的实例。
//
// 必须在任何 B3MultiExt 调用之前执行，否则返回 ErrAlreadyInitialized。
func ConfigureB3MultiExt(p *xb3.Propagator) error {
	if p == nil {
		return ErrNilProvider
	}
	if !b3multi.CompareAndSwap(nil, p) {
		return ErrAlreadyInitialized
	}
	return nil
}
