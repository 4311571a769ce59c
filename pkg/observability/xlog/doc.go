// Package xlog 基于 log/slog 的结构化日志。
//
// # 创建 Logger
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xb3ctl.log", xlog.Rotation{MaxSizeMB: 50}).
//		Build()
//	defer cleanup()
//
// Builder 为一次性使用，遇到第一个配置错误后 Build 返回该错误。
//
// # context 注入
//
// EnrichHandler（默认启用）从 context 读取 xctx 中的 trace_id、span_id、
// request_id、trace_flags 与 b3_debug。传播器提取后由 xtrace.SyncLogFields
// 写入这些字段，日志无需手动携带追踪信息。
//
// # 全局 Logger
//
// [Default]、[SetDefault]、[ResetDefault] 与全局 [Debug]/[Info]/[Warn]/[Error]，
// 面向 CLI 场景。
package xlog
