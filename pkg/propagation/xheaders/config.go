package xheaders

import (
	"github.com/omeyang/xprop/pkg/config/xconf"
)

type configSource struct {
	cfg xconf.Config
	key string
}

// FromConfig 从 xconf 配置读取，key 为空时使用 xconf.KeyRequestHeaders。
// 值可以是列表或逗号分隔字符串。cfg 为 nil 时返回空列表。
func FromConfig(cfg xconf.Config, key string) Source {
	if key == "" {
		key = xconf.KeyRequestHeaders
	}
	return configSource{cfg: cfg, key: key}
}

func (s configSource) HeaderNames() []string {
	if s.cfg == nil {
		return nil
	}
	return s.cfg.Strings(s.key)
}
