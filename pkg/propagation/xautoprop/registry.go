package xautoprop

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/omeyang/xprop/pkg/config/xconf"
)

// Registry 具名传播器注册表，名称大小写不敏感。
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry 创建包含内置传播器（tracecontext、baggage、b3multi-ext）的注册表。
func NewRegistry() *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range builtinProviders() {
		r.providers[p.Name()] = p
	}
	return r
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register 注册提供者。名称为空返回 ErrEmptyName，重名返回 ErrDuplicate。
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return ErrNilProvider
	}
	name := normalize(p.Name())
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.providers[name] = p
	return nil
}

// Replace 注册或覆盖同名提供者，可用于替换内置传播器。
func (r *Registry) Replace(p Provider) error {
	if p == nil {
		return ErrNilProvider
	}
	name := normalize(p.Name())
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	r.providers[name] = p
	r.mu.Unlock()
	return nil
}

// Lookup 按名称查找提供者。
func (r *Registry) Lookup(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[normalize(name)]
	return p, ok
}

// Names 返回已注册名称，按字典序。
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Build 按给定顺序组合传播器。
//
// 空白名称被忽略，重复名称只保留第一次出现。没有名称时返回
// tracecontext + baggage 组合。任一名称未注册时返回 ErrUnknown。
func (r *Registry) Build(names ...string) (propagation.TextMapPropagator, error) {
	seen := make(map[string]struct{}, len(names))
	list := make([]propagation.TextMapPropagator, 0, len(names))
	for _, raw := range names {
		name := normalize(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		p, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknown, raw)
		}
		list = append(list, p.Propagator())
	}

	if len(list) == 0 {
		return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}), nil
	}
	return propagation.NewCompositeTextMapPropagator(list...), nil
}

// FromConfig 按配置键 propagation.propagators 组合传播器。cfg 为 nil 时使用默认组合。
func (r *Registry) FromConfig(cfg xconf.Config) (propagation.TextMapPropagator, error) {
	if cfg == nil {
		return r.Build()
	}
	return r.Build(cfg.Strings(xconf.KeyPropagators)...)
}

// =============================================================================
// 默认注册表
// =============================================================================

var defaultRegistry = NewRegistry()

// Register 向默认注册表注册提供者。
func Register(p Provider) error { return defaultRegistry.Register(p) }

// Lookup 在默认注册表中查找。
func Lookup(name string) (Provider, bool) { return defaultRegistry.Lookup(name) }

// Names 返回默认注册表中的名称。
func Names() []string { return defaultRegistry.Names() }

// Build 使用默认注册表组合传播器。
func Build(names ...string) (propagation.TextMapPropagator, error) {
	return defaultRegistry.Build(names...)
}

// FromConfig 使用默认注册表按配置组合传播器。
func FromConfig(cfg xconf.Config) (propagation.TextMapPropagator, error) {
	return defaultRegistry.FromConfig(cfg)
}

// Install 按配置组合传播器并设置为 OpenTelemetry 全局传播器。
func Install(cfg xconf.Config) (propagation.TextMapPropagator, error) {
	p, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	otel.SetTextMapPropagator(p)
	return p, nil
}
