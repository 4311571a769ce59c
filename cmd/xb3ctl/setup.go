package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.opentelemetry.io/otel/propagation"

	"github.com/omeyang/xprop/pkg/config/xconf"
	"github.com/omeyang/xprop/pkg/observability/xlog"
	"github.com/omeyang/xprop/pkg/propagation/xautoprop"
	"github.com/omeyang/xprop/pkg/propagation/xb3"
	"github.com/omeyang/xprop/pkg/propagation/xb3/observe"
	"github.com/omeyang/xprop/pkg/propagation/xheaders"
)

const etcdDialTimeout = 5 * time.Second

// runtime 命令运行所需的组件。
type runtime struct {
	cfg    xconf.Config // 未指定 --config 时为 nil
	file   xconf.File
	logger xlog.LoggerWithLevel
	b3     *xb3.Propagator
	// composite 按配置组合的传播器，serve 命令用于提取和注入
	composite propagation.TextMapPropagator

	closers []func() error
}

func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// setup 根据全局选项构造日志、透传头来源和传播器。
func setup(cmd *cli.Command) (*runtime, error) {
	rt := &runtime{}

	if path := cmd.String("config"); path != "" {
		cfg, err := xconf.New(path)
		if err != nil {
			return nil, fmt.Errorf("加载配置: %w", err)
		}
		file, err := xconf.Load(cfg)
		if err != nil {
			return nil, fmt.Errorf("解析配置: %w", err)
		}
		rt.cfg, rt.file = cfg, file
	}

	if err := rt.buildLogger(cmd); err != nil {
		return nil, err
	}

	src, err := rt.headerSource(cmd)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	obsMetrics, err := observe.Metrics()
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("创建指标: %w", err)
	}
	rt.b3 = xb3.New(
		xb3.WithHeaderSource(src),
		xb3.WithObserver(observe.Multi(observe.Log(rt.logger), obsMetrics, observe.Span())),
	)

	// 只有进程内首次配置生效。失败时全局单例是另一个实例，本进程的组合传播器仍使用 rt.b3
	if err := xautoprop.ConfigureB3MultiExt(rt.b3); err != nil {
		rt.logger.Warn(context.Background(), "b3multi-ext singleton not replaced", xlog.Err(err))
	}

	rt.composite, err = newComposite(rt.b3, rt.file.Propagation.Propagators)
	if err != nil {
		_ = rt.Close()
		return nil, usagef("propagators: %v", err)
	}
	return rt, nil
}

// newComposite 按名称组合传播器，b3multi-ext 固定解析为 b3，
// 保证提取写入的槽位与 b3.State 读取的槽位属于同一个注册表。
func newComposite(b3 *xb3.Propagator, names []string) (propagation.TextMapPropagator, error) {
	if len(names) == 0 {
		names = []string{xautoprop.NameTraceContext, xautoprop.NameB3MultiExt, xautoprop.NameBaggage}
	}
	reg := xautoprop.NewRegistry()
	if err := reg.Replace(xautoprop.NewProvider(xautoprop.NameB3MultiExt, func() propagation.TextMapPropagator {
		return b3
	})); err != nil {
		return nil, err
	}
	return reg.Build(names...)
}

func (r *runtime) buildLogger(cmd *cli.Command) error {
	lc := r.file.Log
	level := lc.Level
	if v := cmd.String("log-level"); v != "" {
		level = v
	}

	b := xlog.New().
		SetOutput(cmd.Root().ErrWriter).
		SetLevelString(level)
	if lc.Format != "" {
		b = b.SetFormat(lc.Format)
	}
	if lc.File != "" {
		b = b.SetRotation(lc.File, xlog.Rotation{
			MaxSizeMB:  lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAgeDays: lc.MaxAgeDays,
		})
	}

	logger, cleanup, err := b.Build()
	if err != nil {
		return usagef("日志配置: %v", err)
	}
	r.logger = logger
	r.closers = append(r.closers, cleanup)
	return nil
}

func (r *runtime) headerSource(cmd *cli.Command) (xheaders.Source, error) {
	if names := cmd.StringSlice("header"); len(names) > 0 {
		var all []string
		for _, n := range names {
			all = append(all, xheaders.Split(n)...)
		}
		return xheaders.Static(all...), nil
	}

	if endpoints := cmd.String("etcd-endpoints"); endpoints != "" {
		client, err := clientv3.New(clientv3.Config{
			Endpoints:   xheaders.Split(endpoints),
			DialTimeout: etcdDialTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("连接 etcd: %w", err)
		}
		r.closers = append(r.closers, client.Close)
		return xheaders.FromEtcd(client, cmd.String("etcd-key"), xheaders.WithLogger(r.logger)), nil
	}

	if r.cfg != nil {
		return xheaders.FromConfig(r.cfg, ""), nil
	}
	return xheaders.FromEnv(), nil
}
