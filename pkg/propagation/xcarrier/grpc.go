package xcarrier

import (
	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc/metadata"
)

// Metadata gRPC metadata carrier。metadata.MD 本身按小写存储键。
type Metadata metadata.MD

var _ propagation.TextMapCarrier = Metadata(nil)

// Get 返回第一个值。
func (c Metadata) Get(key string) string {
	if vals := metadata.MD(c).Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Set 覆盖 key 的所有值。
func (c Metadata) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

// Keys 返回所有键（小写）。
func (c Metadata) Keys() []string {
	return keys(c)
}
