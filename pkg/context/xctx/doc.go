// Package xctx 提供传播上下文（propagation context）的存取能力。
//
// xctx 是底层存储层：B3 传播器把提取到的状态写入这里，注入时再从这里读出。
// 所有写操作都返回新的 context，不会原地修改调用方持有的 context。
//
// # 字段
//
// 固定字段：
//   - request_id  : X-Request-Id，专用槽位，始终传播
//   - b3_debug    : B3 调试标志（X-B3-Flags: 1），与采样标志分开记录
//   - trace_id / span_id / trace_flags : span context 的字符串镜像，仅供日志使用
//
// 透传请求头：
//   - 每个配置的请求头在注册表构建时分配一个 Slot（稳定的整数编号）
//   - WithHeader / Header 按 Slot 存取，不按字符串动态查找
//
// # 命名约定
//
//	WithXxx(ctx, value)    - 注入：将 value 写入 context
//	Xxx(ctx)               - 读取：从 context 读取值，缺失时返回零值
//	GetXxx(ctx)            - 批量读取：返回结构体
//
// nil context 上的读取返回零值，写入返回 ErrNilContext。
package xctx
