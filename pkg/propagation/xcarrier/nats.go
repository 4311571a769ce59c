package xcarrier

import (
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/propagation"
)

// NATS 消息头 carrier。nats.Header 的 Get 区分大小写，这里补上不敏感匹配。
// 写入前 Header 必须已初始化（msg.Header = nats.Header{}）。
type NATS nats.Header

var _ propagation.TextMapCarrier = NATS(nil)

// Get 返回第一个值。
func (c NATS) Get(key string) string {
	if vals, ok := lookupFold(c, key); ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Set 覆盖 key 的所有值。
func (c NATS) Set(key, value string) {
	deleteFold(c, key)
	nats.Header(c).Set(key, value)
}

// Keys 返回所有键。
func (c NATS) Keys() []string {
	return keys(c)
}
