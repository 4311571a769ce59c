package xb3

import (
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// B3 文本编码宽度。
const (
	traceID64Width  = 64 / 4  // 16 位十六进制 trace ID
	traceID128Width = 128 / 4 // 32 位十六进制 trace ID
	spanIDWidth     = 64 / 4  // 16 位十六进制 span ID

	// traceIDPadding 64 位 trace ID 左侧补零到 128 位。
	traceIDPadding = "0000000000000000"
)

// 采样头取值。
const (
	sampledTrue  = "1"
	sampledFalse = "0"
)

// =============================================================================
// SampledState
// =============================================================================

// SampledState 采样状态，三态：未采样、采样、调试强制采样。
//
// DebugSampled 蕴含采样，但单独记录，便于注入端重新输出调试头。
type SampledState uint8

const (
	// NotSampled 未采样。
	NotSampled SampledState = iota
	// Sampled 已采样。
	Sampled
	// DebugSampled 由 X-B3-Flags: 1 强制采样。
	DebugSampled
)

// IsSampled 判断是否采样。Sampled 和 DebugSampled 都返回 true。
func (s SampledState) IsSampled() bool {
	return s == Sampled || s == DebugSampled
}

// String 返回可读表示，用于日志和调试输出。
func (s SampledState) String() string {
	switch s {
	case NotSampled:
		return "not_sampled"
	case Sampled:
		return "sampled"
	case DebugSampled:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseSampled 将 X-B3-Sampled 的原始值转换为采样状态。
//
// 不做校验："1" 和 "true"（大小写不敏感）视为采样，其余任何值
// （包括缺失、"0"、非法值）都视为未采样。
func ParseSampled(raw string) SampledState {
	if raw == sampledTrue || strings.EqualFold(raw, "true") {
		return Sampled
	}
	return NotSampled
}

// FormatSampled 将采样状态格式化为 X-B3-Sampled 的取值，DebugSampled 输出 "1"。
func FormatSampled(s SampledState) string {
	if s.IsSampled() {
		return sampledTrue
	}
	return sampledFalse
}

// =============================================================================
// 标识解析
// =============================================================================

// ParseTraceID 解析 X-B3-TraceId。
//
// 有效条件：长度为 16 或 32、全部为十六进制字符、非全零。
// 16 位的短格式在左侧补零扩展为 128 位。大写输入按小写处理。
// 无效时返回零值和 false，调用方应视为缺失。
func ParseTraceID(s string) (trace.TraceID, bool) {
	if len(s) != traceID64Width && len(s) != traceID128Width {
		return trace.TraceID{}, false
	}
	if !isHex(s) {
		return trace.TraceID{}, false
	}
	s = strings.ToLower(s)
	if len(s) == traceID64Width {
		s = traceIDPadding + s
	}
	// TraceIDFromHex 对全零返回错误
	id, err := trace.TraceIDFromHex(s)
	if err != nil {
		return trace.TraceID{}, false
	}
	return id, true
}

// ParseSpanID 解析 X-B3-SpanId。
//
// 有效条件：长度为 16、全部为十六进制字符、非全零。
func ParseSpanID(s string) (trace.SpanID, bool) {
	if len(s) != spanIDWidth || !isHex(s) {
		return trace.SpanID{}, false
	}
	id, err := trace.SpanIDFromHex(strings.ToLower(s))
	if err != nil {
		return trace.SpanID{}, false
	}
	return id, true
}

// NewSpanContext 由已校验的标识和采样状态构建远端 span context。
func NewSpanContext(traceID trace.TraceID, spanID trace.SpanID, state SampledState) trace.SpanContext {
	cfg := trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
		Remote:  true,
	}
	if state.IsSampled() {
		cfg.TraceFlags = trace.FlagsSampled
	}
	return trace.NewSpanContext(cfg)
}

// isHex 同时接受大写和小写十六进制字符，空串返回 false。
func isHex(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		isLowerHex := c >= 'a' && c <= 'f'
		isUpperHex := c >= 'A' && c <= 'F'
		if !isDigit && !isLowerHex && !isUpperHex {
			return false
		}
	}
	return true
}
