// Package xautoprop 按名称组合传播器，名称通常来自配置。
//
// 内置名称：
//
//	tracecontext  W3C traceparent/tracestate
//	baggage       W3C baggage
//	b3multi-ext   B3 多头 + X-Request-Id + 透传请求头（xb3）
//
// 配置示例：
//
//	propagation:
//	  propagators: [tracecontext, b3multi-ext]
//
//	p, err := xautoprop.Install(cfg) // 同时设置 otel 全局传播器
//
// b3multi-ext 在进程内只有一个实例（B3MultiExt）。需要从配置文件读取透传
// 请求头时，在启动阶段用 ConfigureB3MultiExt 安装自行构建的实例：
//
//	_ = xautoprop.ConfigureB3MultiExt(xb3.New(
//		xb3.WithHeaderSource(xheaders.FromConfig(cfg, "")),
//	))
package xautoprop
