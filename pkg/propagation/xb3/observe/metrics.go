package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xprop/pkg/propagation/xb3"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xprop/xb3"

	// MetricEvents 事件计数器名称。
	MetricEvents = "xprop.b3.events"

	attrKind  = "kind"
	attrDebug = "debug"
)

type metricsConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义 Metrics 的配置选项。
type Option func(*metricsConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *metricsConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认使用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *metricsConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

type metricsObserver struct {
	events metric.Int64Counter
	// 按事件类型预先构造的属性集，避免每次观测都分配
	sets map[xb3.EventKind]metric.MeasurementOption
}

// Metrics 创建基于 OpenTelemetry 计数器的观测者。
//
// 计数器 xprop.b3.events，标签 kind（事件类型），注入/提取成功时附加 debug。
func Metrics(opts ...Option) (xb3.Observer, error) {
	cfg := &metricsConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)
	events, err := meter.Int64Counter(
		MetricEvents,
		metric.WithDescription("b3 propagation events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("observe: create counter failed: %w", err)
	}

	kinds := []xb3.EventKind{
		xb3.EventExtractStart, xb3.EventNoTrace, xb3.EventInvalidTraceID, xb3.EventInvalidSpanID,
		xb3.EventExtracted, xb3.EventInjectSkipped, xb3.EventInjected,
	}
	sets := make(map[xb3.EventKind]metric.MeasurementOption, len(kinds))
	for _, k := range kinds {
		sets[k] = metric.WithAttributeSet(attribute.NewSet(attribute.String(attrKind, k.String())))
	}
	return &metricsObserver{events: events, sets: sets}, nil
}

func (o *metricsObserver) Observe(ctx context.Context, e xb3.Event) {
	if e.Debug {
		o.events.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrKind, e.Kind.String()),
			attribute.Bool(attrDebug, true),
		))
		return
	}
	set, ok := o.sets[e.Kind]
	if !ok {
		set = metric.WithAttributes(attribute.String(attrKind, e.Kind.String()))
	}
	o.events.Add(ctx, 1, set)
}
