// Package xheaders 提供透传请求头列表的配置来源。
//
// 来源实现 HeaderNames() []string，可直接传给 xb3.WithHeaderSource：
//
//	p := xb3.New(xb3.WithHeaderSource(xheaders.FromConfig(cfg, "")))
//
// 可选来源：
//   - Static：固定列表
//   - FromEnv：环境变量 XPROP_PROPAGATE_REQUEST_HEADERS（envconfig）
//   - FromConfig：xconf 配置键 propagation.request_headers
//   - FromEtcd：etcd 单个 key，值为 JSON/YAML 列表或逗号分隔字符串
//
// 传播器只在首次使用时读取一次。来源失败时返回空列表，传播器照常工作，
// 只是不透传自定义请求头。
package xheaders
