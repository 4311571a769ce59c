package xheaders

import (
	"slices"
	"strings"
)

// EnvRequestHeaders 透传请求头列表的环境变量名（逗号分隔）。
const EnvRequestHeaders = "XPROP_PROPAGATE_REQUEST_HEADERS"

// Source 透传请求头名称来源，与 xb3.HeaderSource 方法集一致。
//
// 本包的所有实现均为 best-effort：读取失败返回空列表而不是错误，
// 失败原因通过 xlog 记录。
type Source interface {
	HeaderNames() []string
}

// staticSource 固定列表。
type staticSource []string

func (s staticSource) HeaderNames() []string {
	return slices.Clone(s)
}

// Static 返回固定的请求头列表。
func Static(names ...string) Source {
	return staticSource(slices.Clone(names))
}

// Split 按逗号切分，去除首尾空白并丢弃空元素。
func Split(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
