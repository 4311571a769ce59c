package xheaders

//go:generate mockgen -source=etcd.go -destination=mock_kv_test.go -package=xheaders

import (
	"context"
	"log/slog"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v3"

	"github.com/omeyang/xprop/pkg/observability/xlog"
)

// DefaultEtcdTimeout 读取 etcd 的默认超时。
const DefaultEtcdTimeout = 3 * time.Second

// KV etcd 读取接口，方法签名与 clientv3.KV 一致，*clientv3.Client 直接满足。
type KV interface {
	Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error)
}

var _ KV = (*clientv3.Client)(nil)

// EtcdOption etcd 来源选项。
type EtcdOption func(*etcdSource)

// WithTimeout 设置读取超时，非正值被忽略。
func WithTimeout(d time.Duration) EtcdOption {
	return func(s *etcdSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger 设置读取失败时使用的 logger，默认使用 xlog 全局 logger。
func WithLogger(l xlog.Logger) EtcdOption {
	return func(s *etcdSource) {
		if l != nil {
			s.logger = l
		}
	}
}

type etcdSource struct {
	kv      KV
	key     string
	timeout time.Duration
	logger  xlog.Logger
}

// FromEtcd 从 etcd 的单个 key 读取请求头列表。
//
// 值支持三种写法：JSON 数组、YAML 列表、逗号分隔字符串。
// key 不存在、连接失败或超时都返回空列表并记录告警，不阻塞传播器超过超时时间。
func FromEtcd(kv KV, key string, opts ...EtcdOption) Source {
	s := &etcdSource{kv: kv, key: key, timeout: DefaultEtcdTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *etcdSource) HeaderNames() []string {
	if s.kv == nil || s.key == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	resp, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.warn(ctx, "xheaders: etcd get failed", xlog.Err(err))
		return nil
	}
	if resp == nil || len(resp.Kvs) == 0 {
		return nil
	}

	names, err := parseList(resp.Kvs[0].Value)
	if err != nil {
		s.warn(ctx, "xheaders: invalid header list in etcd", xlog.Err(err))
		return nil
	}
	return names
}

func (s *etcdSource) warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("key", s.key))
	if s.logger != nil {
		s.logger.Warn(ctx, msg, attrs...)
		return
	}
	xlog.Warn(ctx, msg, attrs...)
}

// parseList 解析 YAML 列表（块或流式，JSON 数组也按 YAML 解析）或逗号分隔字符串。
func parseList(raw []byte) ([]string, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, nil
	}

	var list []string
	if !strings.HasPrefix(text, "[") && !strings.HasPrefix(text, "-") {
		return Split(text), nil
	}
	if err := yaml.Unmarshal([]byte(text), &list); err != nil {
		return nil, err
	}
	return Split(strings.Join(list, ",")), nil
}
