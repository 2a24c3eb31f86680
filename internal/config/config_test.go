package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"respush/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray config.yaml or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("WECHAT_WEBHOOK", "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=abc")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=abc", cfg.Webhook.URL)
	assert.Equal(t, 20*time.Second, cfg.Webhook.Timeout())
	assert.True(t, cfg.Webhook.InsecureSkipVerify)
	assert.Equal(t, "共享无偿资料库.xlsx", cfg.Catalog.Path)
	assert.Equal(t, "资源类型", cfg.Catalog.Columns().Type)
	assert.Equal(t, "资源名称", cfg.Catalog.Columns().Name)
	assert.Equal(t, "资源链接", cfg.Catalog.Columns().Link)
	assert.Equal(t, 5, cfg.Push.PerType)
	assert.Equal(t, 2*time.Second, cfg.Push.Interval())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	_, ok, err := cfg.Push.SeedValue()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WECHAT_WEBHOOK", "https://hook.example/send")
	t.Setenv("EXCEL_FILE_PATH", "data/catalog.xlsx")
	t.Setenv("TARGET_COL_TYPE", "kind")
	t.Setenv("TARGET_COL_NAME", "title")
	t.Setenv("TARGET_COL_LINK", "url")
	t.Setenv("SEND_LINKS_PER_TYPE", "3")
	t.Setenv("SEND_INTERVAL", "0")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("WEBHOOK_INSECURE_SKIP_VERIFY", "false")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/catalog.xlsx", cfg.Catalog.Path)
	assert.Equal(t, "kind", cfg.Catalog.TypeColumn)
	assert.Equal(t, 3, cfg.Push.PerType)
	assert.Equal(t, time.Duration(0), cfg.Push.Interval())
	assert.False(t, cfg.Webhook.InsecureSkipVerify)
	assert.Equal(t, "json", cfg.Log.Format)

	seed, ok, err := cfg.Push.SeedValue()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), seed)
}

func TestLoad_MissingWebhook(t *testing.T) {
	isolate(t)

	_, err := Load("")
	require.Error(t, err)

	var cfgErr *common.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Setting, "WECHAT_WEBHOOK")
	assert.Contains(t, err.Error(), "is required")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		setting string
	}{
		{"per type zero", map[string]string{"SEND_LINKS_PER_TYPE": "0"}, "push.per_type"},
		{"negative interval", map[string]string{"SEND_INTERVAL": "-1"}, "push.interval_sec"},
		{"bad seed", map[string]string{"RANDOM_SEED": "abc"}, "push.seed"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "log.level"},
		{"bad url", map[string]string{"WECHAT_WEBHOOK": "not a url"}, "webhook.url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("WECHAT_WEBHOOK", "https://hook.example/send")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			var cfgErr *common.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, cfgErr.Setting, tt.setting)
		})
	}
}

func TestLoad_NoneSeedIsUnset(t *testing.T) {
	isolate(t)
	t.Setenv("WECHAT_WEBHOOK", "https://hook.example/send")
	t.Setenv("RANDOM_SEED", "None")

	cfg, err := Load("")
	require.NoError(t, err)

	_, ok, err := cfg.Push.SeedValue()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := "webhook:\n  url: https://hook.example/yaml\ncatalog:\n  path: from-yaml.xlsx\npush:\n  per_type: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("SEND_LINKS_PER_TYPE", "9")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://hook.example/yaml", cfg.Webhook.URL)
	assert.Equal(t, "from-yaml.xlsx", cfg.Catalog.Path)
	assert.Equal(t, 9, cfg.Push.PerType)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := isolate(t)
	t.Setenv("WECHAT_WEBHOOK", "https://hook.example/send")

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	var cfgErr *common.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
