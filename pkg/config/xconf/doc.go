// Package xconf 基于 koanf 的配置加载器，读取 xprop 组件使用的 YAML/JSON 配置。
//
// # 配置结构
//
//	propagation:
//	  propagators: [tracecontext, baggage, b3multi-ext]
//	  request_headers: [X-Tenant-Id, X-Custom-Id]
//	log:
//	  level: info
//	  format: json
//
// 列表字段也可以写成逗号分隔字符串（"X-Tenant-Id, X-Custom-Id"），
// 方便通过 ConfigMap 单行注入。
//
// # 并发安全
//
// Reload 通过互斥锁序列化，解析成功后以 atomic.Pointer 替换 koanf 实例；
// 解析失败保留旧配置。Client 返回的指针在 Reload 后仍可读，但数据是旧的，
// 需要最新值时每次重新调用 Client。
//
// # 监视
//
// Watch 基于 fsnotify 监视配置文件所在目录，内置防抖，随 ctx 取消退出。
// 注意透传请求头列表在传播器首次使用时读取一次后固定，重载不会改变它；
// 监视适用于日志级别这类可在运行时调整的配置。
package xconf
