package xcarrier

import "go.opentelemetry.io/otel/propagation"

// Map 大小写不敏感的 map carrier。
//
// 与 propagation.MapCarrier 的区别在于读取不区分大小写，写入会替换
// 大小写不同的同名键。
type Map map[string]string

var _ propagation.TextMapCarrier = Map(nil)

// Get 返回 key 对应的值，不存在返回空字符串。
func (c Map) Get(key string) string {
	v, _ := lookupFold(c, key)
	return v
}

// Set 写入 key。
func (c Map) Set(key, value string) {
	deleteFold(c, key)
	c[key] = value
}

// Keys 返回所有键。
func (c Map) Keys() []string {
	return keys(c)
}
