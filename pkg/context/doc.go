// Package context 提供上下文相关的子包。
//
// 子包列表：
//   - xctx: Context 增强，存取 request id、B3 调试标志、透传头槽位和日志用的追踪字段
//
// 设计原则：
//   - 所有上下文信息通过 context.Context 传递，不使用全局变量
//   - 写入返回新 context，不修改调用方持有的 context
package context
