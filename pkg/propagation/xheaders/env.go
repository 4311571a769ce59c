package xheaders

import (
	"context"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"github.com/omeyang/xprop/pkg/observability/xlog"
)

// envSpec 环境变量映射。
type envSpec struct {
	RequestHeaders string `envconfig:"XPROP_PROPAGATE_REQUEST_HEADERS"`
}

type envSource struct{}

// FromEnv 从环境变量 XPROP_PROPAGATE_REQUEST_HEADERS 读取（逗号分隔）。
// 变量未设置时返回空列表。读取发生在 HeaderNames 调用时。
func FromEnv() Source {
	return envSource{}
}

func (envSource) HeaderNames() []string {
	var spec envSpec
	if err := envconfig.Process("", &spec); err != nil {
		xlog.Warn(context.Background(), "xheaders: failed to process env",
			slog.String(xlog.KeyHeader, EnvRequestHeaders), xlog.Err(err))
		return nil
	}
	return Split(spec.RequestHeaders)
}
