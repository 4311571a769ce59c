// Package propagation 提供跨进程传播相关的子包。
//
// 子包列表：
//   - xb3: B3 多头传播器，附带 X-Request-Id 和可配置的透传请求头
//   - xb3/observe: 传播器事件的日志、指标、span 观察者
//   - xheaders: 透传头列表来源（静态、环境变量、配置文件、etcd）
//   - xcarrier: gRPC、NATS、AMQP、Kafka 等消息载体
//   - xautoprop: 具名传播器注册表，按配置组合
package propagation
