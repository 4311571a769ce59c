package xb3_test

import (
	"testing"

	"github.com/omeyang/xprop/pkg/propagation/xb3"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestParseTraceID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"128位", "463ac35c9f6413ad48485a3953bb6124", "463ac35c9f6413ad48485a3953bb6124", true},
		{"64位补零", "a2fb4a1d1a96d312", "0000000000000000a2fb4a1d1a96d312", true},
		{"大写归一化", "463AC35C9F6413AD48485A3953BB6124", "463ac35c9f6413ad48485a3953bb6124", true},
		{"空串", "", "", false},
		{"非十六进制", "zz", "", false},
		{"15位", "463ac35c9f6413a", "", false},
		{"17位", "463ac35c9f6413ad4", "", false},
		{"31位", "463ac35c9f6413ad48485a3953bb612", "", false},
		{"全零128位", "00000000000000000000000000000000", "", false},
		{"全零64位", "0000000000000000", "", false},
		{"含非法字符", "463ac35c9f6413ad48485a3953bb612g", "", false},
		{"含空格", " 463ac35c9f6413a", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := xb3.ParseTraceID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			} else {
				assert.Equal(t, trace.TraceID{}, got)
			}
		})
	}
}

func TestParseSpanID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"有效", "a2fb4a1d1a96d312", true},
		{"大写", "A2FB4A1D1A96D312", true},
		{"空串", "", false},
		{"过短", "a2fb4a1d1a96d31", false},
		{"32位", "463ac35c9f6413ad48485a3953bb6124", false},
		{"全零", "0000000000000000", false},
		{"非十六进制", "a2fb4a1d1a96d31x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := xb3.ParseSpanID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, got.IsValid())
		})
	}
}

func TestParseSampled(t *testing.T) {
	tests := []struct {
		raw  string
		want xb3.SampledState
	}{
		{"1", xb3.Sampled},
		{"true", xb3.Sampled},
		{"TRUE", xb3.Sampled},
		{"0", xb3.NotSampled},
		{"false", xb3.NotSampled},
		{"", xb3.NotSampled},
		{"yes", xb3.NotSampled},
		{"d", xb3.NotSampled},
	}
	for _, tt := range tests {
		t.Run("raw="+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, xb3.ParseSampled(tt.raw))
		})
	}
}

func TestSampledState(t *testing.T) {
	assert.False(t, xb3.NotSampled.IsSampled())
	assert.True(t, xb3.Sampled.IsSampled())
	assert.True(t, xb3.DebugSampled.IsSampled())

	assert.Equal(t, "0", xb3.FormatSampled(xb3.NotSampled))
	assert.Equal(t, "1", xb3.FormatSampled(xb3.Sampled))
	assert.Equal(t, "1", xb3.FormatSampled(xb3.DebugSampled))

	assert.Equal(t, "not_sampled", xb3.NotSampled.String())
	assert.Equal(t, "sampled", xb3.Sampled.String())
	assert.Equal(t, "debug", xb3.DebugSampled.String())
	assert.Equal(t, "unknown", xb3.SampledState(9).String())
}

func TestNewSpanContext(t *testing.T) {
	tid, ok := xb3.ParseTraceID("463ac35c9f6413ad48485a3953bb6124")
	assert.True(t, ok)
	sid, ok := xb3.ParseSpanID("a2fb4a1d1a96d312")
	assert.True(t, ok)

	sc := xb3.NewSpanContext(tid, sid, xb3.NotSampled)
	assert.True(t, sc.IsValid())
	assert.True(t, sc.IsRemote())
	assert.False(t, sc.IsSampled())

	sc = xb3.NewSpanContext(tid, sid, xb3.DebugSampled)
	assert.True(t, sc.IsSampled())
}
