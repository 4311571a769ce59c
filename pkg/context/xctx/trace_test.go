package xctx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/omeyang/xprop/pkg/context/xctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Trace 操作测试
// =============================================================================

func TestTraceID(t *testing.T) {
	if got := xctx.TraceID(context.Background()); got != "" {
		t.Errorf("TraceID(empty) = %q, want empty", got)
	}

	ctx, err := xctx.WithTraceID(context.Background(), "trace-123")
	if err != nil {
		t.Fatalf("WithTraceID() error = %v", err)
	}
	if got := xctx.TraceID(ctx); got != "trace-123" {
		t.Errorf("TraceID() = %q, want %q", got, "trace-123")
	}

	ctx, err = xctx.WithTraceID(ctx, "new-trace")
	if err != nil {
		t.Fatalf("WithTraceID() error = %v", err)
	}
	if got := xctx.TraceID(ctx); got != "new-trace" {
		t.Errorf("TraceID(overwrite) = %q, want %q", got, "new-trace")
	}

	var nilCtx context.Context
	if got := xctx.TraceID(nilCtx); got != "" {
		t.Errorf("TraceID(nil) = %q, want empty", got)
	}

	// nil context 注入返回 ErrNilContext
	_, err = xctx.WithTraceID(nilCtx, "trace-123")
	if !errors.Is(err, xctx.ErrNilContext) {
		t.Errorf("WithTraceID(nil) error = %v, want %v", err, xctx.ErrNilContext)
	}
}

func TestStringFields(t *testing.T) {
	tests := []struct {
		name      string
		testValue string
		setter    func(context.Context, string) (context.Context, error)
		getter    func(context.Context) string
	}{
		{name: "SpanID", testValue: "span-456", setter: xctx.WithSpanID, getter: xctx.SpanID},
		{name: "RequestID", testValue: "req-789", setter: xctx.WithRequestID, getter: xctx.RequestID},
		{name: "TraceFlags", testValue: "01", setter: xctx.WithTraceFlags, getter: xctx.TraceFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := tt.setter(context.Background(), tt.testValue)
			require.NoError(t, err)
			assert.Equal(t, tt.testValue, tt.getter(ctx))

			// 空 context 返回空字符串
			assert.Empty(t, tt.getter(context.Background()))

			// nil context 返回空字符串
			assert.Empty(t, tt.getter(nil))

			// nil context 注入返回 ErrNilContext
			_, err = tt.setter(nil, tt.testValue)
			assert.ErrorIs(t, err, xctx.ErrNilContext)
		})
	}
}

func TestDebug(t *testing.T) {
	assert.False(t, xctx.Debug(context.Background()))
	assert.False(t, xctx.Debug(nil))

	ctx, err := xctx.WithDebug(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, xctx.Debug(ctx))

	// 后写入的值覆盖先前的值，原 context 不受影响
	cleared, err := xctx.WithDebug(ctx, false)
	require.NoError(t, err)
	assert.False(t, xctx.Debug(cleared))
	assert.True(t, xctx.Debug(ctx))

	_, err = xctx.WithDebug(nil, true)
	assert.ErrorIs(t, err, xctx.ErrNilContext)
}

func TestGetTrace(t *testing.T) {
	t.Run("空context返回空结构体", func(t *testing.T) {
		assert.Equal(t, xctx.Trace{}, xctx.GetTrace(context.Background()))
	})

	t.Run("正常获取", func(t *testing.T) {
		ctx, _ := xctx.WithTraceID(context.Background(), "t1")
		ctx, _ = xctx.WithSpanID(ctx, "s1")
		ctx, _ = xctx.WithRequestID(ctx, "r1")
		ctx, _ = xctx.WithTraceFlags(ctx, "01")
		ctx, _ = xctx.WithDebug(ctx, true)

		assert.Equal(t, xctx.Trace{
			TraceID:    "t1",
			SpanID:     "s1",
			RequestID:  "r1",
			TraceFlags: "01",
			Debug:      true,
		}, xctx.GetTrace(ctx))
	})
}
