package xb3

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/propagation"
)

// Name 传播器在宿主中的注册名。
const Name = "b3multi-ext"

// 请求头名称。读取时大小写由 carrier 处理，写出时按此写法。
const (
	HeaderTraceID   = "X-B3-TraceId"
	HeaderSpanID    = "X-B3-SpanId"
	HeaderSampled   = "X-B3-Sampled"
	HeaderFlags     = "X-B3-Flags"
	HeaderRequestID = "X-Request-Id"

	// DebugMarker X-B3-Flags 中表示调试的取值。
	DebugMarker = "1"
)

// fields 核心头，顺序固定。
var fields = [...]string{HeaderTraceID, HeaderSpanID, HeaderSampled}

// Option 传播器选项。
type Option func(*options)

type options struct {
	source   HeaderSource
	observer Observer
}

// WithHeaderSource 设置透传请求头的配置来源。来源在首次 Extract/Inject 时才读取。
func WithHeaderSource(src HeaderSource) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// WithHeaders 使用固定的透传请求头列表。
func WithHeaders(names ...string) Option {
	names = slices.Clone(names)
	return WithHeaderSource(HeaderSourceFunc(func() []string { return names }))
}

// WithObserver 设置观测钩子，nil 表示不观测。
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// Propagator B3 多头传播器，附带 X-Request-Id 与可配置透传请求头。
//
// 除注册表缓存外无状态，可被任意多个 goroutine 共享。
// 进程内应只构建一次，并显式传递给各请求处理路径。
type Propagator struct {
	registry *Registry
	observer Observer
}

var _ propagation.TextMapPropagator = (*Propagator)(nil)

// New 创建传播器。构造时不读取透传请求头配置。
func New(opts ...Option) *Propagator {
	o := &options{observer: NoopObserver{}}
	for _, opt := range opts {
		opt(o)
	}
	return &Propagator{
		registry: NewRegistry(o.source),
		observer: o.observer,
	}
}

// Fields 返回 X-B3-TraceId、X-B3-SpanId、X-B3-Sampled，顺序固定。
//
// 不包含 X-B3-Flags 和透传请求头；需要完整集合时使用 AllFields。
func (p *Propagator) Fields() []string {
	return slices.Clone(fields[:])
}

// AllFields 返回注入可能写出的全部请求头：核心头、X-B3-Flags、X-Request-Id 与透传请求头。
//
// 会触发注册表初始化。
func (p *Propagator) AllFields() []string {
	generic := p.registry.resolve().generic
	out := make([]string, 0, len(fields)+2+len(generic))
	out = append(out, fields[:]...)
	out = append(out, HeaderFlags, HeaderRequestID)
	for _, e := range generic {
		out = append(out, e.Header)
	}
	return out
}

// Registry 返回透传请求头注册表。
func (p *Propagator) Registry() *Registry {
	return p.registry
}

func (p *Propagator) observe(ctx context.Context, e Event) {
	p.observer.Observe(ctx, e)
}
