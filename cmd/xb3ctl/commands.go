package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xprop/pkg/context/xctx"
	"github.com/omeyang/xprop/pkg/propagation/xb3"
	"github.com/omeyang/xprop/pkg/propagation/xcarrier"
)

// withRuntime 为命令构造 runtime，执行结束后释放。
func withRuntime(fn func(ctx context.Context, cmd *cli.Command, rt *runtime) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()
		return fn(ctx, cmd, rt)
	}
}

// =============================================================================
// fields
// =============================================================================

func createFieldsCommand() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "打印传播器读写的请求头",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "包含 X-B3-Flags、X-Request-Id 和透传头",
			},
		},
		Action: withRuntime(func(_ context.Context, cmd *cli.Command, rt *runtime) error {
			fields := rt.b3.Fields()
			if cmd.Bool("all") {
				fields = rt.b3.AllFields()
			}
			w := cmd.Root().Writer
			for _, f := range fields {
				fmt.Fprintln(w, f)
			}
			return nil
		}),
	}
}

// =============================================================================
// extract
// =============================================================================

// stateView State 的 JSON 输出形式。
type stateView struct {
	Valid     bool              `json:"valid"`
	TraceID   string            `json:"trace_id,omitempty"`
	SpanID    string            `json:"span_id,omitempty"`
	Sampled   string            `json:"sampled"`
	Debug     bool              `json:"debug"`
	RequestID string            `json:"request_id,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

func newStateView(st xb3.State) stateView {
	v := stateView{
		Valid:     st.SpanContext.IsValid(),
		Sampled:   st.Sampled.String(),
		Debug:     st.Debug,
		RequestID: st.RequestID,
		Headers:   st.Headers,
	}
	if v.Valid {
		v.TraceID = st.SpanContext.TraceID().String()
		v.SpanID = st.SpanContext.SpanID().String()
	}
	return v
}

func createExtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "从请求头提取并打印 context 状态",
		ArgsUsage: `"Header: value" ...`,
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			carrier, err := parseHeaderArgs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			out := rt.b3.Extract(ctx, carrier)
			return writeJSON(cmd.Root().Writer, newStateView(rt.b3.State(out)))
		}),
	}
}

// parseHeaderArgs 解析 "K: V" 或 "K=V" 形式的参数。读取时请求头名称大小写不敏感。
func parseHeaderArgs(args []string) (xcarrier.Map, error) {
	carrier := xcarrier.Map{}
	for _, arg := range args {
		k, v, ok := splitHeader(arg)
		if !ok {
			return nil, usagef("无效的请求头 %q，应为 \"K: V\" 或 K=V", arg)
		}
		carrier[k] = v
	}
	return carrier, nil
}

func splitHeader(arg string) (string, string, bool) {
	i := strings.IndexAny(arg, ":=")
	if i <= 0 {
		return "", "", false
	}
	k := strings.TrimSpace(arg[:i])
	if k == "" {
		return "", "", false
	}
	return k, strings.TrimSpace(arg[i+1:]), true
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// inject
// =============================================================================

func createInjectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inject",
		Usage: "按参数构造 context 并打印注入的请求头",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "trace-id", Usage: "16 或 32 位十六进制"},
			&cli.StringFlag{Name: "span-id", Usage: "16 位十六进制"},
			&cli.BoolFlag{Name: "sampled", Usage: "采样"},
			&cli.BoolFlag{Name: "debug", Usage: "调试强制采样（写出 X-B3-Flags: 1）"},
			&cli.StringFlag{Name: "request-id", Usage: "X-Request-Id"},
			&cli.StringSliceFlag{Name: "set", Usage: "透传头的值 K=V，可重复"},
		},
		Action: withRuntime(func(ctx context.Context, cmd *cli.Command, rt *runtime) error {
			ctx, err := buildInjectContext(ctx, cmd, rt.b3)
			if err != nil {
				return err
			}
			carrier := propagation.MapCarrier{}
			rt.b3.Inject(ctx, carrier)
			printHeaders(cmd.Root().Writer, carrier)
			return nil
		}),
	}
}

func buildInjectContext(ctx context.Context, cmd *cli.Command, p *xb3.Propagator) (context.Context, error) {
	var err error
	if tid := cmd.String("trace-id"); tid != "" {
		traceID, ok := xb3.ParseTraceID(tid)
		if !ok {
			return nil, usagef("无效的 trace id %q", tid)
		}
		spanID, ok := xb3.ParseSpanID(cmd.String("span-id"))
		if !ok {
			return nil, usagef("无效的 span id %q", cmd.String("span-id"))
		}

		state := xb3.NotSampled
		switch {
		case cmd.Bool("debug"):
			state = xb3.DebugSampled
			if ctx, err = xctx.WithDebug(ctx, true); err != nil {
				return nil, err
			}
		case cmd.Bool("sampled"):
			state = xb3.Sampled
		}
		ctx = trace.ContextWithRemoteSpanContext(ctx, xb3.NewSpanContext(traceID, spanID, state))
	}

	if rid := cmd.String("request-id"); rid != "" {
		if ctx, err = xctx.WithRequestID(ctx, rid); err != nil {
			return nil, err
		}
	}

	for _, kv := range cmd.StringSlice("set") {
		k, v, ok := splitHeader(kv)
		if !ok {
			return nil, usagef("无效的 --set %q，应为 K=V", kv)
		}
		entry, ok := p.Registry().Lookup(k)
		if !ok {
			return nil, usagef("%s 不是已配置的透传头", k)
		}
		if ctx, err = xctx.WithHeader(ctx, entry.Slot, v); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// printHeaders 按键排序输出，便于比对。
func printHeaders(w io.Writer, carrier propagation.MapCarrier) {
	keys := carrier.Keys()
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, carrier[k])
	}
}
