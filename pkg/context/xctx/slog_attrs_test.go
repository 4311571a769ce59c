package xctx_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/omeyang/xprop/pkg/context/xctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAttrs(t *testing.T) {
	t.Run("空context返回nil", func(t *testing.T) {
		assert.Nil(t, xctx.TraceAttrs(context.Background()))
		assert.Nil(t, xctx.TraceAttrs(nil))
	})

	t.Run("完整字段", func(t *testing.T) {
		ctx, _ := xctx.WithTraceID(context.Background(), "463ac35c9f6413ad48485a3953bb6124")
		ctx, _ = xctx.WithSpanID(ctx, "a2fb4a1d1a96d312")
		ctx, _ = xctx.WithRequestID(ctx, "req-1")
		ctx, _ = xctx.WithTraceFlags(ctx, "01")
		ctx, _ = xctx.WithDebug(ctx, true)

		attrs := xctx.TraceAttrs(ctx)
		require.Len(t, attrs, 5)
		assert.Equal(t, xctx.KeyTraceID, attrs[0].Key)
		assert.Equal(t, xctx.KeySpanID, attrs[1].Key)
		assert.Equal(t, xctx.KeyRequestID, attrs[2].Key)
		assert.Equal(t, xctx.KeyTraceFlags, attrs[3].Key)
		assert.Equal(t, xctx.KeyB3Debug, attrs[4].Key)
		assert.True(t, attrs[4].Value.Bool())
	})

	t.Run("只追加非空字段", func(t *testing.T) {
		ctx, _ := xctx.WithRequestID(context.Background(), "req-2")
		attrs := xctx.AppendTraceAttrs([]slog.Attr{slog.String("k", "v")}, ctx)
		require.Len(t, attrs, 2)
		assert.Equal(t, "k", attrs[0].Key)
		assert.Equal(t, xctx.KeyRequestID, attrs[1].Key)
		assert.Equal(t, "req-2", attrs[1].Value.String())
	})
}
