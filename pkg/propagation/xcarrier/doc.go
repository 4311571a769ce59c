// Package xcarrier 为常见传输实现 propagation.TextMapCarrier。
//
// 所有 carrier 的读取都大小写不敏感：B3 请求头在各条链路上的写法
// 并不统一（X-B3-TraceId、x-b3-traceid），透传请求头更是如此。
// 写入时先删除大小写不同的同名键，再按给定写法写入；gRPC metadata
// 由 gRPC 统一转为小写。
//
//	Map       map[string]string
//	Metadata  gRPC metadata.MD
//	NATS      nats.Header
//	AMQP      amqp091.Table（消息 headers）
//	Kafka     *kgo.Record 的 headers
//
// HTTP 直接使用 propagation.HeaderCarrier。
package xcarrier
