package xctx_test

import (
	"context"
	"sync"
	"testing"

	"github.com/omeyang/xprop/pkg/context/xctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot_Unique(t *testing.T) {
	const n = 64
	var (
		mu    sync.Mutex
		seen  = make(map[xctx.Slot]struct{}, n)
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			s := xctx.NewSlot()
			mu.Lock()
			seen[s] = struct{}{}
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, seen, n, "并发分配的槽位必须互不相同")
	for s := range seen {
		assert.True(t, s.Valid())
	}
}

func TestSlot_ZeroValueInvalid(t *testing.T) {
	var zero xctx.Slot
	assert.False(t, zero.Valid())

	_, err := xctx.WithHeader(context.Background(), zero, "v")
	assert.ErrorIs(t, err, xctx.ErrInvalidSlot)

	_, ok := xctx.LookupHeader(context.Background(), zero)
	assert.False(t, ok)
}

func TestWithHeader(t *testing.T) {
	a := xctx.NewSlot()
	b := xctx.NewSlot()

	base := context.Background()
	ctx, err := xctx.WithHeader(base, a, "abc")
	require.NoError(t, err)

	assert.Equal(t, "abc", xctx.Header(ctx, a))
	assert.Empty(t, xctx.Header(ctx, b), "其他槽位不受影响")
	assert.Empty(t, xctx.Header(base, a), "原 context 不被修改")

	v, ok := xctx.LookupHeader(ctx, a)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	_, ok = xctx.LookupHeader(ctx, b)
	assert.False(t, ok)

	// 覆盖写入
	ctx2, err := xctx.WithHeader(ctx, a, "def")
	require.NoError(t, err)
	assert.Equal(t, "def", xctx.Header(ctx2, a))
	assert.Equal(t, "abc", xctx.Header(ctx, a))

	_, err = xctx.WithHeader(nil, a, "v")
	assert.ErrorIs(t, err, xctx.ErrNilContext)
	assert.Empty(t, xctx.Header(nil, a))
}

func TestSlot_String(t *testing.T) {
	assert.Equal(t, "slot#0", xctx.Slot(0).String())
	assert.Equal(t, "slot#42", xctx.Slot(42).String())
}
