package xcarrier

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/propagation"
)

// AMQP AMQP 0-9-1 消息 headers carrier。
//
// 只读取 string 和 []byte 类型的值，其他类型视为不存在。
// 写入前 Table 必须已初始化。
type AMQP amqp.Table

var _ propagation.TextMapCarrier = AMQP(nil)

// Get 返回 key 对应的字符串值。
func (c AMQP) Get(key string) string {
	v, ok := lookupFold(c, key)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

// Set 以 string 类型写入 key。
func (c AMQP) Set(key, value string) {
	deleteFold(c, key)
	c[key] = value
}

// Keys 返回所有键。
func (c AMQP) Keys() []string {
	return keys(c)
}
