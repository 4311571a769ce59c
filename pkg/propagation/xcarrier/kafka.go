package xcarrier

import (
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/propagation"
)

// Kafka franz-go 消息 headers carrier。
//
// Kafka 允许同名 header 重复出现；Get 返回第一个匹配，
// Set 替换所有大小写不敏感匹配的 header。
type Kafka struct {
	record *kgo.Record
}

var _ propagation.TextMapCarrier = Kafka{}

// NewKafka 包装 record，record 为 nil 时所有操作为空操作。
func NewKafka(record *kgo.Record) Kafka {
	return Kafka{record: record}
}

// Get 返回第一个匹配的值。
func (c Kafka) Get(key string) string {
	if c.record == nil {
		return ""
	}
	for _, h := range c.record.Headers {
		if strings.EqualFold(h.Key, key) {
			return string(h.Value)
		}
	}
	return ""
}

// Set 替换同名 header。
func (c Kafka) Set(key, value string) {
	if c.record == nil {
		return
	}
	kept := c.record.Headers[:0]
	for _, h := range c.record.Headers {
		if !strings.EqualFold(h.Key, key) {
			kept = append(kept, h)
		}
	}
	c.record.Headers = append(kept, kgo.RecordHeader{Key: key, Value: []byte(value)})
}

// Keys 返回所有 header 键，保持出现顺序，重复键只出现一次。
func (c Kafka) Keys() []string {
	if c.record == nil {
		return nil
	}
	out := make([]string, 0, len(c.record.Headers))
	seen := make(map[string]struct{}, len(c.record.Headers))
	for _, h := range c.record.Headers {
		if _, ok := seen[h.Key]; ok {
			continue
		}
		seen[h.Key] = struct{}{}
		out = append(out, h.Key)
	}
	return out
}
