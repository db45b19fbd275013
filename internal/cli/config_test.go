package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

func TestLoadConfigFirstRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "yama")

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# yama configuration")
	assert.Contains(t, string(data), "max_count: 100")
	assert.Contains(t, string(data), "fetch_timeout: 30s")
}

func TestLoadConfigKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	custom := []byte(`site: local
sites:
  - name: local
    url: http://localhost:9999/list.html
max_count: 10
fetch_timeout: 5s
rate_limit:
  requests_per_minute: 60
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), custom, 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Site)
	assert.Equal(t, []types.Site{{Name: "local", URL: "http://localhost:9999/list.html"}}, cfg.Sites)
	assert.Equal(t, 10, cfg.MaxCount)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, types.RateLimit{RequestsPerMinute: 60, Burst: 10}, cfg.RateLimit)
	assert.Equal(t, ":8000", cfg.Listen, "unset keys keep their defaults")

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("YAMA_MAX_COUNT", "50")
	t.Setenv("YAMA_LISTEN", "127.0.0.1:9000")
	t.Setenv("YAMA_RATE_LIMIT_BURST", "3")
	t.Setenv("YAMA_LOG_LEVEL", "debug")
	t.Setenv("ROOT_PATH", "/api")

	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxCount)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/api", cfg.RootPath)
}

func TestLoadConfigPrefixedRootPathWins(t *testing.T) {
	t.Setenv("YAMA_ROOT_PATH", "/v2")
	t.Setenv("ROOT_PATH", "/api")

	cfg, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/v2", cfg.RootPath)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"zero max count", "max_count: 0\n", types.ErrMaxCountInvalid},
		{"site not in registry", "site: elsewhere\n", types.ErrSiteUnknown},
		{"negative rate limit", "rate_limit:\n  requests_per_minute: -1\n", types.ErrRateLimitInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(tt.content), 0o644))

			_, err := loadConfig(dir)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("max_count: [\n"), 0o644))

	_, err := loadConfig(dir)
	assert.ErrorContains(t, err, "read config")
}
