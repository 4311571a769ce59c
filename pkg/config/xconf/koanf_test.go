package xconf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/omeyang/xprop/pkg/config/xconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
propagation:
  propagators: [tracecontext, b3multi-ext]
  request_headers:
    - X-Tenant-Id
    - " X-Custom-Id "
    - ""
log:
  level: debug
  format: json
  file: /tmp/xb3.log
  max_size_mb: 10
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)

	cfg, err := xconf.New(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, xconf.FormatYAML, cfg.Format())
	assert.Equal(t, "debug", cfg.Client().String("log.level"))
}

func TestNew_Errors(t *testing.T) {
	_, err := xconf.New("")
	assert.ErrorIs(t, err, xconf.ErrEmptyPath)

	_, err = xconf.New("config.toml")
	assert.ErrorIs(t, err, xconf.ErrUnsupportedFormat)

	_, err = xconf.New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, xconf.ErrLoadFailed)

	_, err = xconf.New(writeFile(t, "bad.json", "{not json"))
	assert.ErrorIs(t, err, xconf.ErrParseFailed)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := xconf.NewFromBytes([]byte(`{"propagation":{"propagators":["baggage"]}}`), xconf.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())
	assert.Equal(t, []string{"baggage"}, cfg.Strings(xconf.KeyPropagators))
	assert.ErrorIs(t, cfg.Reload(), xconf.ErrNotReloadable)

	empty, err := xconf.NewFromBytes(nil, xconf.FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, empty.Strings(xconf.KeyRequestHeaders))

	_, err = xconf.NewFromBytes(nil, "toml")
	assert.ErrorIs(t, err, xconf.ErrUnsupportedFormat)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"列表", "propagation:\n  request_headers: [X-A, X-B]\n", []string{"X-A", "X-B"}},
		{"逗号分隔", "propagation:\n  request_headers: \"X-A, X-B,,\"\n", []string{"X-A", "X-B"}},
		{"空白元素", "propagation:\n  request_headers: [\" X-A \", \"\"]\n", []string{"X-A"}},
		{"缺失", "log:\n  level: info\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := xconf.NewFromBytes([]byte(tt.yaml), xconf.FormatYAML)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Strings(xconf.KeyRequestHeaders))
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := xconf.NewFromBytes([]byte(sampleYAML), xconf.FormatYAML)
	require.NoError(t, err)

	f, err := xconf.Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"tracecontext", "b3multi-ext"}, f.Propagation.Propagators)
	assert.Equal(t, []string{"X-Tenant-Id", "X-Custom-Id"}, f.Propagation.RequestHeaders)
	assert.Equal(t, xconf.Log{Level: "debug", Format: "json", File: "/tmp/xb3.log", MaxSizeMB: 10}, f.Log)
}

func TestUnmarshal_Error(t *testing.T) {
	cfg, err := xconf.NewFromBytes([]byte("log:\n  max_size_mb:\n    nested: 1\n"), xconf.FormatYAML)
	require.NoError(t, err)

	var l xconf.Log
	assert.ErrorIs(t, cfg.Unmarshal(xconf.KeyLog, &l), xconf.ErrUnmarshalFailed)
	assert.Panics(t, func() { xconf.MustUnmarshal(cfg, xconf.KeyLog, &l) })
}

func TestReload(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  level: info\n")
	cfg, err := xconf.New(path)
	require.NoError(t, err)

	old := cfg.Client()
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, "warn", cfg.Client().String("log.level"))
	assert.Equal(t, "info", old.String("log.level"), "旧实例保持快照语义")

	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o600))
	assert.ErrorIs(t, cfg.Reload(), xconf.ErrParseFailed)
	assert.Equal(t, "warn", cfg.Client().String("log.level"), "解析失败保留旧配置")
}

func TestWithDelim(t *testing.T) {
	cfg, err := xconf.NewFromBytes([]byte("log:\n  level: info\n"), xconf.FormatYAML,
		xconf.WithDelim("/"), xconf.WithTag(""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Client().String("log/level"))
}
