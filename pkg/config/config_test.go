package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.Equal(t, time.Minute, c.Cache.CleanupInterval)
	assert.Equal(t, 10, c.Cache.Redis.PoolSize)
	assert.Equal(t, 2*time.Second, c.Server.SlowThreshold)
	assert.Equal(t, 10*time.Second, c.Provider.Timeout)
	assert.Equal(t, "SPY", c.Provider.StatusSymbol)
	assert.Equal(t, []string{".HK", ".HE"}, c.Classifier.StripSuffixes)
	assert.Equal(t, 4, c.Classifier.PadWidth)
	assert.Equal(t, "/metrics", c.Metrics.Path)
	assert.Equal(t, "json", c.Log.Format)
	assert.Len(t, c.Symbols.US, 8)
	assert.Equal(t, "0700", c.Symbols.HK[0].Symbol)
}

func TestParseValidation(t *testing.T) {
	cases := map[string]string{
		"missing environment": "server:\n  port: 80\n",
		"bad port":            "environment: x\nserver:\n  port: 70000\n",
		"negative ttl":        "environment: x\ncache:\n  ttl: -1s\n",
		"pad width":           "environment: x\nclassifier:\n  pad_width: -2\n",
		"log format":          "environment: x\nlog:\n  format: xml\n",
		"redis without addr":  "environment: x\ncache:\n  redis:\n    enabled: true\n",
		"malformed yaml":      "environment: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestShippedConfigLoads(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "development", c.Environment)
	assert.Len(t, c.News.Market, 3)
	assert.Contains(t, c.News.Search.URL, "{query}")
	assert.Len(t, c.News.HKQueries, 4)
	assert.False(t, c.Cache.Redis.Enabled)
}

func TestApplyEnv(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)

	env := map[string]string{
		"STOCKLENS_ENV":     "production",
		"PROVIDER_BASE_URL": "http://localhost:9999",
		"REDIS_ADDR":        "redis:6379",
		"CACHE_TTL":         "90s",
		"LOG_LEVEL":         "debug",
		"HTTP_PORT":         "9090",
	}
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, "http://localhost:9999", c.Provider.BaseURL)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "redis:6379", c.Cache.Redis.Addr)
	assert.Equal(t, 90*time.Second, c.Cache.TTL)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 9090, c.Server.Port)

	env["CACHE_TTL"] = "soon"
	assert.Error(t, c.applyEnv(func(k string) string { return env[k] }))
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o600))
	t.Setenv("HTTP_PORT", "7070")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, c.Server.Port)

	_, err = LoadWithEnv(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
