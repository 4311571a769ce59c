package xconf

import "github.com/knadh/koanf/v2"

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// 约定的配置键。
const (
	// KeyRequestHeaders 透传请求头名称列表。
	KeyRequestHeaders = "propagation.request_headers"

	// KeyPropagators 组合传播器的名称列表，按顺序生效。
	KeyPropagators = "propagation.propagators"

	// KeyLog 日志配置节。
	KeyLog = "log"
)

// Config 定义配置接口。
// 只提供增值功能，基础操作请直接使用 Client() 返回的 koanf 实例。
type Config interface {
	// Client 返回当前的 koanf 实例。Reload 之后旧实例仍可读，但数据已过期。
	Client() *koanf.Koanf

	// Unmarshal 将指定路径的配置反序列化到目标结构体。
	// path 为空字符串时反序列化整个配置。
	Unmarshal(path string, target any) error

	// Strings 读取字符串列表。
	// 值既可以是列表，也可以是逗号分隔的单个字符串；元素去除首尾空白，空元素被丢弃。
	// 键不存在时返回 nil。
	Strings(key string) []string

	// Reload 重新加载配置文件，并发安全。
	// 从字节数据创建的 Config 返回 ErrNotReloadable。
	Reload() error

	// Path 返回配置文件路径，从字节数据创建的 Config 返回空字符串。
	Path() string

	// Format 返回配置格式。
	Format() Format
}

// =============================================================================
// 配置结构
// =============================================================================

// File 配置文件的完整结构。
//
//	propagation:
//	  propagators: [tracecontext, baggage, b3multi-ext]
//	  request_headers: [X-Tenant-Id, X-Custom-Id]
//	log:
//	  level: info
//	  format: json
//	  file: /var/log/xb3ctl.log
type File struct {
	Propagation Propagation `koanf:"propagation"`
	Log         Log         `koanf:"log"`
}

// Propagation 传播相关配置。
type Propagation struct {
	Propagators    []string `koanf:"propagators"`
	RequestHeaders []string `koanf:"request_headers"`
}

// Log 日志配置。
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File 非空时写入文件并按大小轮转，否则写 stderr。
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// Load 读取完整配置结构。列表字段同样接受逗号分隔字符串。
func Load(cfg Config) (File, error) {
	var f File
	if err := cfg.Unmarshal(KeyLog, &f.Log); err != nil {
		return File{}, err
	}
	f.Propagation.Propagators = cfg.Strings(KeyPropagators)
	f.Propagation.RequestHeaders = cfg.Strings(KeyRequestHeaders)
	return f, nil
}
