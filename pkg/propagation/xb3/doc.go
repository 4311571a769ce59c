// Package xb3 实现 b3multi-ext 传播格式：B3 多头协议，附带 X-Request-Id
// 与一组可配置的透传请求头。
//
// # 线上格式
//
//	X-B3-TraceId   16 或 32 位十六进制，非全零；16 位时左侧补零
//	X-B3-SpanId    16 位十六进制，非全零
//	X-B3-Sampled   "1"/"true" 为采样，其余视为未采样
//	X-B3-Flags     "1" 表示调试，蕴含采样
//	X-Request-Id   不透明关联字符串
//
// 透传请求头的名称来自 HeaderSource，在首次 Extract/Inject 时读取一次，
// 之后固定。每个名称分配一个 xctx.Slot，值按槽位存取。
//
// # 使用
//
//	p := xb3.New(xb3.WithHeaders("X-Tenant-Id", "X-Custom-Id"))
//	ctx = p.Extract(ctx, propagation.HeaderCarrier(r.Header))
//	...
//	p.Inject(ctx, propagation.HeaderCarrier(req.Header))
//
// Propagator 实现 propagation.TextMapPropagator，可直接与
// propagation.NewCompositeTextMapPropagator 组合。
//
// 协议层面的异常（缺失、格式错误）不产生错误，按未追踪请求处理；
// 需要观测这些情况时通过 WithObserver 注入钩子，见 xb3/observe。
package xb3
