package xlog

import "log/slog"

// 常用属性 Key。追踪相关的 key（trace_id 等）定义在 xctx。
const (
	KeyError     = "error"
	KeyComponent = "component"
	KeyEvent     = "event"
	KeyHeader    = "header"
)

// Err 创建错误属性，err 为 nil 时返回空属性（会被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Component 标识日志来源组件。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}
