package observe

import (
	"context"
	"log/slog"

	"github.com/omeyang/xprop/pkg/observability/xlog"
	"github.com/omeyang/xprop/pkg/propagation/xb3"
)

type logObserver struct {
	logger xlog.Logger
}

// Log 返回记录日志的观测者。logger 为 nil 时使用 xlog 全局 logger。
//
// 校验失败（无效 trace/span ID）记录为 Warn 并附带原始值，其余事件为 Debug。
// EventExtractStart 不记录。
func Log(logger xlog.Logger) xb3.Observer {
	return &logObserver{logger: logger}
}

func (o *logObserver) Observe(ctx context.Context, e xb3.Event) {
	if e.Kind == xb3.EventExtractStart {
		return
	}
	logger := o.logger
	if logger == nil {
		logger = xlog.Default()
	}

	attrs := []slog.Attr{
		xlog.Component(xb3.Name),
		slog.String(xlog.KeyEvent, e.Kind.String()),
	}
	if e.Kind.IsFailure() {
		attrs = append(attrs, slog.String(xlog.KeyHeader, e.Header), slog.String("value", e.Value))
		logger.Warn(ctx, "b3: invalid header", attrs...)
		return
	}

	if e.SpanContext.IsValid() {
		attrs = append(attrs,
			slog.String("b3_trace_id", e.SpanContext.TraceID().String()),
			slog.String("b3_span_id", e.SpanContext.SpanID().String()),
			slog.Bool("sampled", e.SpanContext.IsSampled()),
		)
	}
	if e.Debug {
		attrs = append(attrs, slog.Bool("debug", true))
	}
	logger.Debug(ctx, "b3: "+e.Kind.String(), attrs...)
}
