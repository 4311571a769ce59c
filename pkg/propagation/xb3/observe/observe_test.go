package observe_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/omeyang/xprop/pkg/observability/xlog"
	"github.com/omeyang/xprop/pkg/propagation/xb3"
	"github.com/omeyang/xprop/pkg/propagation/xb3/observe"
)

const (
	testTraceID = "463ac35c9f6413ad48485a3953bb6124"
	testSpanID  = "a2fb4a1d1a96d312"
)

func validCarrier() propagation.MapCarrier {
	return propagation.MapCarrier{
		"X-B3-TraceId": testTraceID,
		"X-B3-SpanId":  testSpanID,
		"X-B3-Sampled": "1",
	}
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)

	p := xb3.New(xb3.WithObserver(observe.Log(logger)))

	p.Extract(context.Background(), propagation.MapCarrier{"X-B3-TraceId": "zz"})
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "event=invalid_trace_id")
	assert.Contains(t, out, "value=zz")
	assert.NotContains(t, out, "extract_start")

	buf.Reset()
	ctx := p.Extract(context.Background(), validCarrier())
	assert.Contains(t, buf.String(), "b3_trace_id="+testTraceID)

	buf.Reset()
	p.Inject(ctx, propagation.MapCarrier{})
	assert.Contains(t, buf.String(), "event=injected")
}

func TestLog_DebugLevelFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)

	p := xb3.New(xb3.WithObserver(observe.Log(logger)))
	p.Extract(context.Background(), validCarrier())
	assert.Zero(t, buf.Len(), "Info 级别下正常事件不输出")
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != observe.MetricEvents {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				kind, _ := dp.Attributes.Value(attribute.Key("kind"))
				key := kind.AsString()
				if debug, ok := dp.Attributes.Value(attribute.Key("debug")); ok && debug.AsBool() {
					key += "+debug"
				}
				out[key] += dp.Value
			}
		}
	}
	return out
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	obs, err := observe.Metrics(observe.WithMeterProvider(mp), observe.WithInstrumentationName("test"))
	require.NoError(t, err)
	p := xb3.New(xb3.WithObserver(obs))

	ctx := p.Extract(context.Background(), validCarrier())
	p.Extract(context.Background(), propagation.MapCarrier{})
	p.Extract(context.Background(), propagation.MapCarrier{"X-B3-TraceId": testTraceID})
	debug := validCarrier()
	debug["X-B3-Flags"] = "1"
	p.Extract(context.Background(), debug)
	p.Inject(ctx, propagation.MapCarrier{})
	p.Inject(context.Background(), propagation.MapCarrier{})

	assert.Equal(t, map[string]int64{
		"extract_start":   4,
		"extracted":       1,
		"extracted+debug": 1,
		"no_trace":        1,
		"invalid_span_id": 1,
		"injected":        1,
		"inject_skipped":  1,
	}, collect(t, reader))
}

func TestMetrics_DefaultProvider(t *testing.T) {
	obs, err := observe.Metrics(observe.WithMeterProvider(nil))
	require.NoError(t, err)
	assert.NotPanics(t, func() { obs.Observe(context.Background(), xb3.Event{Kind: xb3.EventKind(42)}) })
}

func TestSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "consume")
	p := xb3.New(xb3.WithObserver(observe.Span()))
	p.Extract(ctx, propagation.MapCarrier{"X-B3-TraceId": testTraceID, "X-B3-SpanId": "bad"})
	p.Extract(ctx, validCarrier())
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	events := ended[0].Events()
	require.Len(t, events, 1, "只记录校验失败")
	assert.Equal(t, "b3.invalid_span_id", events[0].Name)
}

func TestMulti(t *testing.T) {
	var a, b int
	count := func(n *int) xb3.Observer {
		return xb3.ObserverFunc(func(context.Context, xb3.Event) { *n++ })
	}

	observe.Multi(nil, count(&a)).Observe(context.Background(), xb3.Event{})
	assert.Equal(t, 1, a)

	m := observe.Multi(count(&a), nil, count(&b))
	m.Observe(context.Background(), xb3.Event{Kind: xb3.EventInjected})
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)

	assert.NotPanics(t, func() { observe.Multi().Observe(context.Background(), xb3.Event{}) })
}
