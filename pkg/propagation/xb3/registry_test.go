package xb3_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/omeyang/xprop/pkg/propagation/xb3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource 记录 HeaderNames 的调用次数。
type countingSource struct {
	names []string
	calls atomic.Int32
}

func (s *countingSource) HeaderNames() []string {
	s.calls.Add(1)
	return s.names
}

func headers(entries []xb3.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Header)
	}
	return out
}

func TestRegistry_LazyRead(t *testing.T) {
	src := &countingSource{names: []string{"X-Custom-Id"}}
	r := xb3.NewRegistry(src)

	assert.False(t, r.Initialized())
	assert.Equal(t, int32(0), src.calls.Load(), "构造时不应读取配置")

	assert.Equal(t, []string{"X-Custom-Id"}, headers(r.Resolve()))
	assert.True(t, r.Initialized())

	r.Resolve()
	r.Generic()
	assert.Equal(t, int32(1), src.calls.Load(), "配置只读取一次")
}

func TestRegistry_Normalization(t *testing.T) {
	r := xb3.NewRegistry(xb3.HeaderSourceFunc(func() []string {
		return []string{" X-Custom-Id ", "", "  ", "x-custom-id", "X-Tenant-Id", "X-CUSTOM-ID"}
	}))

	entries := r.Resolve()
	assert.Equal(t, []string{"X-Custom-Id", "X-Tenant-Id"}, headers(entries),
		"去除空白、跳过空名称、大小写不敏感去重并保留首个写法")
	assert.NotEqual(t, entries[0].Slot, entries[1].Slot)
	for _, e := range entries {
		assert.True(t, e.Slot.Valid())
	}
}

func TestRegistry_GenericExcludesRequestID(t *testing.T) {
	r := xb3.NewRegistry(xb3.HeaderSourceFunc(func() []string {
		return []string{"x-request-id", "X-Custom-Id"}
	}))

	assert.Equal(t, []string{"x-request-id", "X-Custom-Id"}, headers(r.Resolve()))
	assert.Equal(t, []string{"X-Custom-Id"}, headers(r.Generic()))
}

func TestRegistry_Lookup(t *testing.T) {
	r := xb3.NewRegistry(xb3.HeaderSourceFunc(func() []string {
		return []string{"X-Custom-Id"}
	}))

	e, ok := r.Lookup("x-custom-ID")
	require.True(t, ok)
	assert.Equal(t, "X-Custom-Id", e.Header)

	_, ok = r.Lookup("X-Other")
	assert.False(t, ok)
}

func TestRegistry_NilSource(t *testing.T) {
	r := xb3.NewRegistry(nil)
	assert.Empty(t, r.Resolve())
	assert.True(t, r.Initialized())

	var fn xb3.HeaderSourceFunc
	assert.Nil(t, fn.HeaderNames())
}

func TestRegistry_SourcePanic(t *testing.T) {
	r := xb3.NewRegistry(xb3.HeaderSourceFunc(func() []string {
		panic("config unavailable")
	}))

	assert.NotPanics(t, func() {
		assert.Empty(t, r.Resolve())
	})
	assert.True(t, r.Initialized(), "panic 后仍然发布快照，不会反复读取")
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	r := xb3.NewRegistry(xb3.HeaderSourceFunc(func() []string {
		return []string{"X-A", "X-B"}
	}))

	got := r.Resolve()
	got[0].Header = "mutated"
	assert.Equal(t, []string{"X-A", "X-B"}, headers(r.Resolve()))
}

func TestRegistry_ConcurrentFirstAccess(t *testing.T) {
	const (
		goroutines = 64
		m          = 50
	)
	names := make([]string, m)
	for i := range names {
		names[i] = fmt.Sprintf("X-Header-%02d", i)
	}
	src := &countingSource{names: names}
	r := xb3.NewRegistry(src)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			// 填充期间读到的部分结果也不能包含重复条目
			seen := make(map[string]struct{})
			for _, e := range r.Resolve() {
				if _, dup := seen[e.Header]; dup {
					t.Errorf("重复条目 %s", e.Header)
				}
				seen[e.Header] = struct{}{}
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, names, headers(r.Resolve()), "恰好 M 个条目，按配置顺序")

	slots := make(map[uint32]struct{}, m)
	for _, e := range r.Resolve() {
		slots[uint32(e.Slot)] = struct{}{}
	}
	assert.Len(t, slots, m)
}
