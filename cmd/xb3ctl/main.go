// xb3ctl 是 b3multi-ext 传播器的命令行调试工具。
//
// 用法:
//
//	xb3ctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config          配置文件路径（YAML/JSON）
//	-H, --header          透传请求头名称，可重复（优先于配置文件）
//	    --etcd-endpoints  从 etcd 读取透传头列表（逗号分隔的地址）
//	    --etcd-key        etcd 中透传头列表的 key
//	    --log-level       日志级别 (debug/info/warn/error)
//
// 透传头来源优先级：--header > etcd > 配置文件 > 环境变量 XPROP_PROPAGATE_REQUEST_HEADERS。
//
// 命令:
//
//	fields         打印传播器读写的请求头
//	extract        从 "K: V" 参数提取，打印 context 状态（JSON）
//	inject         按参数构造 context，打印注入的请求头
//	serve          启动 HTTP 服务，回显每个请求提取出的状态
//
// 退出码:
//
//	0: 成功
//	1: 执行失败
//	2: 参数错误
//
// 示例:
//
//	xb3ctl -H X-Tenant-Id fields
//	xb3ctl -H X-Tenant-Id extract "X-B3-TraceId: 463ac35c9f6413ad" "X-B3-SpanId: a2fb4a1d1a96d312" "X-Tenant-Id: t1"
//	xb3ctl inject --trace-id 463ac35c9f6413ad --span-id a2fb4a1d1a96d312 --sampled --request-id r1
//	xb3ctl -c xprop.yaml serve --addr :8080
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xb3ctl",
		Usage:     "b3multi-ext 传播器调试工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML/JSON）",
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "透传请求头名称，可重复",
			},
			&cli.StringFlag{
				Name:  "etcd-endpoints",
				Usage: "etcd 地址（逗号分隔）",
			},
			&cli.StringFlag{
				Name:  "etcd-key",
				Usage: "etcd 中透传头列表的 key",
				Value: "/xprop/propagation/request_headers",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别，覆盖配置文件",
			},
		},
		Commands: []*cli.Command{
			createFieldsCommand(),
			createExtractCommand(),
			createInjectCommand(),
			createServeCommand(),
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args, os.Stdout, os.Stderr)
}

// execute 运行命令并返回退出码。
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := createApp(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
