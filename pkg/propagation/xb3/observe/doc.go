// Package observe 提供 xb3.Observer 的常用实现。
//
//   - Log：通过 xlog 记录事件，校验失败为 Warn，其余为 Debug
//   - Metrics：OpenTelemetry 计数器 xprop.b3.events，按事件类型打标签
//   - Span：把校验失败记录为当前 span 的事件
//   - Multi：组合多个观测者
//
// 观测者在请求路径上同步执行，实现保持轻量。
package observe
