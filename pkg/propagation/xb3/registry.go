package xb3

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xprop/pkg/context/xctx"
)

// HeaderSource 透传请求头名称的配置来源。
//
// 实现为 best-effort：读取失败时返回空列表，不返回错误。
// 注册表在进程生命周期内最多调用一次 HeaderNames。
type HeaderSource interface {
	HeaderNames() []string
}

// HeaderSourceFunc 函数适配器。
type HeaderSourceFunc func() []string

// HeaderNames 实现 HeaderSource。
func (f HeaderSourceFunc) HeaderNames() []string {
	if f == nil {
		return nil
	}
	return f()
}

// Entry 注册表条目：请求头名称与其 context 槽位。
type Entry struct {
	// Header 首次配置时的原始写法，注入时按此写出。
	Header string
	// Slot 值在 context 中的存储槽位。
	Slot xctx.Slot
}

// snapshot 初始化完成后发布的只读视图。
type snapshot struct {
	all     []Entry
	generic []Entry // 去掉 X-Request-Id 后的条目
}

// Registry 透传请求头注册表。
//
// 创建时为空，首次 Resolve 时从 HeaderSource 读取配置并填充，之后不再刷新。
//
// 名称按大小写不敏感去重：只有大小写不同的名称（如 X-Tenant-Id 与 x-tenant-id）
// 视为同一个请求头，只占一个条目和一个槽位，注入时使用首次出现的写法。
//
// 并发模型：
//   - CAS 标志保证只有一个 goroutine 读取配置，读取期间不持有任何锁
//   - 每个条目通过 LoadOrStore 原子插入，重复名称（大小写不敏感）只保留首个
//   - 填充完成后通过 atomic.Pointer 发布有序快照
//   - 填充期间到达的调用方不阻塞，读取可能尚未填满的 map
type Registry struct {
	src     HeaderSource
	started atomic.Bool
	entries sync.Map // foldKey(header) -> Entry
	snap    atomic.Pointer[snapshot]
}

// NewRegistry 创建注册表。构造时不读取配置。
func NewRegistry(src HeaderSource) *Registry {
	return &Registry{src: src}
}

// Resolve 返回全部条目，按配置顺序排列。
//
// 返回的切片是副本，调用方可以修改。
func (r *Registry) Resolve() []Entry {
	return slices.Clone(r.resolve().all)
}

// Generic 返回参与通用透传的条目，X-Request-Id 被排除（它有专用槽位）。
func (r *Registry) Generic() []Entry {
	return slices.Clone(r.resolve().generic)
}

// Lookup 按请求头名称（大小写不敏感）查找条目。
func (r *Registry) Lookup(header string) (Entry, bool) {
	r.resolve()
	v, ok := r.entries.Load(foldKey(strings.TrimSpace(header)))
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// Initialized 报告配置是否已读取完毕。
func (r *Registry) Initialized() bool {
	return r.snap.Load() != nil
}

// resolve 返回内部快照，只读。
func (r *Registry) resolve() *snapshot {
	if s := r.snap.Load(); s != nil {
		return s
	}
	if r.started.CompareAndSwap(false, true) {
		return r.fill()
	}
	return r.partial()
}

// fill 读取配置并逐条插入，最后发布快照。
//
// HeaderSource panic 时已插入的条目仍会发布，panic 不会扩散到请求处理链路。
func (r *Registry) fill() *snapshot {
	var ordered []Entry
	func() {
		defer func() { _ = recover() }()

		var names []string
		if r.src != nil {
			names = r.src.HeaderNames()
		}
		ordered = make([]Entry, 0, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if e, stored := r.insert(name); stored {
				ordered = append(ordered, e)
			}
		}
	}()

	s := newSnapshot(ordered)
	r.snap.Store(s)
	return s
}

// insert 原子地插入条目，已存在时返回 false。
func (r *Registry) insert(name string) (Entry, bool) {
	key := foldKey(name)
	if _, ok := r.entries.Load(key); ok {
		return Entry{}, false
	}
	v, loaded := r.entries.LoadOrStore(key, Entry{Header: name, Slot: xctx.NewSlot()})
	if loaded {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// partial 在填充进行中时返回当前已插入的条目，按槽位排序。
func (r *Registry) partial() *snapshot {
	var entries []Entry
	r.entries.Range(func(_, v any) bool {
		if e, ok := v.(Entry); ok {
			entries = append(entries, e)
		}
		return true
	})
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Slot, b.Slot)
	})
	return newSnapshot(entries)
}

func newSnapshot(all []Entry) *snapshot {
	generic := make([]Entry, 0, len(all))
	for _, e := range all {
		if isRequestIDHeader(e.Header) {
			continue
		}
		generic = append(generic, e)
	}
	return &snapshot{all: all, generic: generic}
}

func isRequestIDHeader(name string) bool {
	return strings.EqualFold(name, HeaderRequestID)
}

func foldKey(name string) string {
	return strings.ToLower(name)
}
