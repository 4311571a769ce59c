package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xprop/pkg/config/xconf"
	"github.com/omeyang/xprop/pkg/context/xctx"
	"github.com/omeyang/xprop/pkg/observability/xlog"
	"github.com/omeyang/xprop/pkg/observability/xtrace"
	"github.com/omeyang/xprop/pkg/propagation/xb3"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	shutdownTimeout = 5 * time.Second
)

func createServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "启动 HTTP 服务，回显每个请求提取出的状态和向下游传播的请求头",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "监听地址",
				Value: defaultAddr,
			},
			&cli.BoolFlag{
				Name:  "generate-request-id",
				Usage: "入站请求缺少 X-Request-Id 时生成",
			},
		},
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			ln, err := net.Listen("tcp", cmd.String("addr"))
			if err != nil {
				return err
			}
			handler := newServeHandler(rt.b3, rt.composite,
				xtrace.WithRequestIDGeneration(cmd.Bool("generate-request-id")),
				xtrace.WithRequestIDEcho(true),
			)
			return serve(ctx, ln, handler, rt)
		}),
	}
}

// echoResponse serve 的响应体。
type echoResponse struct {
	State stateView `json:"state"`
	// LogFields 日志 EnrichHandler 从 context 读到的字段
	LogFields  logFields         `json:"log_fields"`
	Downstream map[string]string `json:"downstream"`
}

type logFields struct {
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	TraceFlags string `json:"trace_flags,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Debug      bool   `json:"b3_debug"`
}

func newLogFields(tr xctx.Trace) logFields {
	return logFields{
		TraceID:    tr.TraceID,
		SpanID:     tr.SpanID,
		TraceFlags: tr.TraceFlags,
		RequestID:  tr.RequestID,
		Debug:      tr.Debug,
	}
}

// newServeHandler 用 composite 提取入站请求头，回显 b3 视角的状态和出站请求头。
func newServeHandler(b3 *xb3.Propagator, composite propagation.TextMapPropagator, opts ...xtrace.Option) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		xlog.Info(ctx, "request", xlog.Component("xb3ctl"))

		down := propagation.MapCarrier{}
		composite.Inject(ctx, down)

		w.Header().Set("Content-Type", "application/json")
		if err := writeJSON(w, echoResponse{
			State:      newStateView(b3.State(ctx)),
			LogFields:  newLogFields(xctx.GetTrace(ctx)),
			Downstream: down,
		}); err != nil {
			xlog.Warn(ctx, "write response failed", xlog.Err(err))
		}
	})
	return xtrace.HTTPMiddleware(composite, opts...)(echo)
}

// serve 运行 HTTP 服务直到 ctx 取消；配置了文件时同时监视日志级别变化。
func serve(ctx context.Context, ln net.Listener, handler http.Handler, rt *runtime) error {
	xlog.SetDefault(rt.logger)
	defer xlog.ResetDefault()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.logger.Info(ctx, "serving", xlog.Component("xb3ctl"), slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if rt.cfg != nil {
		g.Go(func() error {
			return xconf.Watch(ctx, rt.cfg, levelReloader(rt.logger))
		})
	}
	return g.Wait()
}

// levelReloader 配置文件变更时更新日志级别。透传头注册表不随配置重载。
func levelReloader(logger xlog.LoggerWithLevel) xconf.WatchCallback {
	return func(cfg xconf.Config, err error) {
		ctx := context.Background()
		if err != nil {
			logger.Warn(ctx, "config reload failed", xlog.Err(err))
			return
		}
		var lc xconf.Log
		if err := cfg.Unmarshal(xconf.KeyLog, &lc); err != nil {
			logger.Warn(ctx, "config reload failed", xlog.Err(err))
			return
		}
		if lc.Level == "" {
			return
		}
		level, err := xlog.ParseLevel(lc.Level)
		if err != nil {
			logger.Warn(ctx, "invalid log level", xlog.Err(err))
			return
		}
		if level != logger.GetLevel() {
			logger.SetLevel(level)
			logger.Info(ctx, "log level changed", xlog.Component("xb3ctl"))
		}
	}
}
